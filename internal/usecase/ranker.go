package usecase

import (
	"sort"

	"github.com/lpg-station-service/internal/domain"
)

// RankedStations - результат ранжирования станций радиусного поиска
type RankedStations struct {
	Ordered          []domain.StationWithDistance
	AvailableCount   int
	UnavailableCount int
}

// RankNearby упорядочивает станции в два яруса: сначала доступные,
// затем недоступные, внутри яруса по возрастанию расстояния. Равные
// расстояния упорядочиваются по ID станции, чтобы порядок был
// воспроизводимым. Счётчики считаются по всему входу независимо от
// availableOnly: по ним вызывающая сторона отличает "в радиусе пусто"
// от "в радиусе есть станции, но все недоступны".
func RankNearby(stations []domain.StationWithDistance, availableOnly bool) RankedStations {
	var available, unavailable []domain.StationWithDistance
	for _, s := range stations {
		if s.IsAvailable {
			available = append(available, s)
		} else {
			unavailable = append(unavailable, s)
		}
	}

	sortByDistance(available)
	sortByDistance(unavailable)

	result := RankedStations{
		AvailableCount:   len(available),
		UnavailableCount: len(unavailable),
	}

	if availableOnly {
		result.Ordered = available
		return result
	}

	result.Ordered = append(available, unavailable...)
	return result
}

func sortByDistance(stations []domain.StationWithDistance) {
	sort.Slice(stations, func(i, j int) bool {
		if stations[i].DistanceKm != stations[j].DistanceKm {
			return stations[i].DistanceKm < stations[j].DistanceKm
		}
		return stations[i].ID < stations[j].ID
	})
}
