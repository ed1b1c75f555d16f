package utils

import "strings"

// UserAgentInfo - разобранные поля User-Agent для аналитики посещений
type UserAgentInfo struct {
	DeviceType string
	Browser    string
	OS         string
}

// ParseUserAgent извлекает тип устройства, браузер и ОС из строки User-Agent.
// Неопознанные браузер/ОС остаются пустыми строками.
func ParseUserAgent(userAgent string) UserAgentInfo {
	ua := strings.ToLower(userAgent)

	return UserAgentInfo{
		DeviceType: detectDeviceType(ua),
		Browser:    detectBrowser(ua),
		OS:         detectOS(ua),
	}
}

func detectDeviceType(ua string) string {
	if isMobileAgent(ua) {
		return "mobile"
	}
	for _, agent := range []string{"ipad", "tablet", "kindle", "playbook"} {
		if strings.Contains(ua, agent) {
			return "tablet"
		}
	}
	return "desktop"
}

func isMobileAgent(ua string) bool {
	for _, agent := range []string{"iphone", "android", "blackberry", "webos", "windows phone"} {
		if strings.Contains(ua, agent) {
			return true
		}
	}
	return false
}

func detectBrowser(ua string) string {
	switch {
	case strings.Contains(ua, "edge") || strings.Contains(ua, "edg/"):
		return "Edge"
	case strings.Contains(ua, "opera") || strings.Contains(ua, "opr/"):
		return "Opera"
	case strings.Contains(ua, "chrome") && !strings.Contains(ua, "chromium"):
		return "Chrome"
	case strings.Contains(ua, "safari") && !strings.Contains(ua, "chrome"):
		return "Safari"
	case strings.Contains(ua, "firefox"):
		return "Firefox"
	case strings.Contains(ua, "msie") || strings.Contains(ua, "trident/"):
		return "Internet Explorer"
	}
	return ""
}

func detectOS(ua string) string {
	switch {
	case strings.Contains(ua, "windows phone"):
		return "Windows Phone"
	case strings.Contains(ua, "windows"):
		return "Windows"
	case strings.Contains(ua, "macintosh") || strings.Contains(ua, "mac os x"):
		return "macOS"
	case strings.Contains(ua, "android"):
		return "Android"
	case strings.Contains(ua, "iphone"), strings.Contains(ua, "ipad"), strings.Contains(ua, "ipod"):
		return "iOS"
	case strings.Contains(ua, "linux"):
		return "Linux"
	}
	return ""
}
