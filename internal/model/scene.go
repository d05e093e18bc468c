package model

import "time"

// Стили повествования сцены.
const (
	StyleNarrative   = "narrative"
	StyleDialogue    = "dialogue"
	StyleDescriptive = "descriptive"
	StyleAction      = "action"
	StylePoetic      = "poetic"
)

// Тон сцены.
const (
	ToneDramatic    = "dramatic"
	ToneHumorous    = "humorous"
	ToneMysterious  = "mysterious"
	ToneRomantic    = "romantic"
	ToneTense       = "tense"
	ToneMelancholic = "melancholic"
)

// Scene - фрагмент повествования в мире.
type Scene struct {
	ID                 int64     `json:"id"`
	WorldID            int64     `json:"worldId"`
	Title              string    `json:"title"`
	Content            string    `json:"content"`
	StyleType          *string   `json:"styleType"`
	Tone               *string   `json:"tone"`
	IncludedCharacters []int64   `json:"includedCharacters"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Clone возвращает копию сцены с собственным срезом персонажей.
func (s *Scene) Clone() *Scene {
	cp := *s
	cp.IncludedCharacters = append([]int64{}, s.IncludedCharacters...)
	return &cp
}

// InsertScene - данные для создания сцены.
type InsertScene struct {
	WorldID            int64
	Title              string
	Content            string
	StyleType          *string
	Tone               *string
	IncludedCharacters []int64
}

// ScenePatch - частичное обновление сцены.
type ScenePatch struct {
	Title              *string
	Content            *string
	StyleType          *string
	Tone               *string
	IncludedCharacters *[]int64
}
