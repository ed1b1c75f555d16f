// Package docs LPG Station Service API.
//
// Сервис поиска заправочных станций LPG. Предоставляет API для радиусного
// поиска станций с ранжированием по доступности и расстоянию, управления
// станциями, ценами и назначениями менеджеров, а также статистику посещений.
//
// Основные возможности:
// - Поиск активных станций в радиусе от точки (сначала доступные, затем недоступные)
// - Управление станциями: доступность, цены, постоянное открытие/закрытие
// - Журнал назначений менеджеров с инвариантом "один активный менеджер на станцию"
// - История цен с экспортом в XLSX
// - Статистика посещений API
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//	- application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//
//	Security:
//	- api_key:
//
//	SecurityDefinitions:
//	api_key:
//	     type: apiKey
//	     name: Authorization
//	     in: header
//
// swagger:meta
package docs
