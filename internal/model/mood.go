package model

import (
	"math"
	"regexp"
	"strings"
)

const (
	MoodNeutral          = "neutral"
	DefaultMoodIntensity = 0.5
	DefaultMoodColor     = "#808080"
)

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// moodPalette - цвета для известных настроений.
var moodPalette = map[string]string{
	"neutral":    DefaultMoodColor,
	"happy":      "#FFD700",
	"sad":        "#6495ED",
	"angry":      "#FF4500",
	"fearful":    "#800080",
	"curious":    "#32CD32",
	"excited":    "#FF1493",
	"thoughtful": "#4682B4",
	"confused":   "#FF8C00",
}

// Mood - результат анализа эмоционального тона текста.
type Mood struct {
	Mood          string  `json:"mood"`
	Intensity     float64 `json:"intensity"`
	DominantColor string  `json:"dominantColor"`
}

// NeutralMood - значение по умолчанию при любой ошибке анализа.
func NeutralMood() Mood {
	return Mood{Mood: MoodNeutral, Intensity: DefaultMoodIntensity, DominantColor: DefaultMoodColor}
}

// MoodColor возвращает цвет палитры для настроения или серый для неизвестных.
func MoodColor(mood string) string {
	if c, ok := moodPalette[strings.ToLower(strings.TrimSpace(mood))]; ok {
		return c
	}
	return DefaultMoodColor
}

// IsHexColor проверяет формат #RRGGBB.
func IsHexColor(s string) bool {
	return hexColorRe.MatchString(s)
}

// Normalize приводит настроение к каноничному виду: метка в нижнем регистре,
// интенсивность в [0,1] (значения по шкале 0-100 делятся на 100, NaN и бесконечность
// заменяются на DefaultMoodIntensity), валидный цвет.
func (m Mood) Normalize() Mood {
	m.Mood = strings.ToLower(strings.TrimSpace(m.Mood))
	if math.IsNaN(m.Intensity) || math.IsInf(m.Intensity, 0) {
		m.Intensity = DefaultMoodIntensity
	}
	if m.Intensity > 1 {
		m.Intensity /= 100
	}
	switch {
	case m.Intensity < 0:
		m.Intensity = 0
	case m.Intensity > 1:
		m.Intensity = 1
	}
	m.DominantColor = strings.TrimSpace(m.DominantColor)
	if !IsHexColor(m.DominantColor) {
		m.DominantColor = MoodColor(m.Mood)
	}
	return m
}
