package model

import "time"

// Character - персонаж мира, с которым можно общаться.
type Character struct {
	ID                   int64           `json:"id"`
	WorldID              int64           `json:"worldId"`
	Name                 string          `json:"name"`
	Role                 string          `json:"role"`
	Appearance           *string         `json:"appearance"`
	Personality          string          `json:"personality"`
	Backstory            *string         `json:"backstory"`
	Memory               CharacterMemory `json:"memory"`
	CurrentMood          *string         `json:"currentMood"`
	CurrentMoodIntensity *float64        `json:"currentMoodIntensity"`
	CurrentMoodColor     *string         `json:"currentMoodColor"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
}

// Clone возвращает глубокую копию персонажа.
func (c *Character) Clone() *Character {
	cp := *c
	cp.Memory = c.Memory.Clone()
	return &cp
}

// InsertCharacter - данные для создания персонажа.
type InsertCharacter struct {
	WorldID     int64
	Name        string
	Role        string
	Appearance  *string
	Personality string
	Backstory   *string
	Memory      CharacterMemory
}

// CharacterPatch - частичное обновление персонажа.
// Память сюда не входит: она меняется только через слияние (MemoryPatch).
type CharacterPatch struct {
	Name                 *string
	Role                 *string
	Appearance           *string
	Personality          *string
	Backstory            *string
	CurrentMood          *string
	CurrentMoodIntensity *float64
	CurrentMoodColor     *string
}

// MoodPatch строит патч, записывающий настроение персонажа.
func MoodPatch(m Mood) CharacterPatch {
	mood, intensity, color := m.Mood, m.Intensity, m.DominantColor
	return CharacterPatch{
		CurrentMood:          &mood,
		CurrentMoodIntensity: &intensity,
		CurrentMoodColor:     &color,
	}
}
