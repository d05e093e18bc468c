package http

import (
	"encoding/json"

	"dreamscribe/internal/model"
	"dreamscribe/internal/service"
)

// --- Миры ---

type createWorldRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=200"`
	Description string  `json:"description" binding:"required,min=1"`
	Theme       *string `json:"theme" binding:"omitempty,oneof=fantasy sci-fi historical modern post-apocalyptic"`
}

func (r createWorldRequest) toInput() service.CreateWorldInput {
	return service.CreateWorldInput{Name: r.Name, Description: r.Description, Theme: r.Theme}
}

type updateWorldRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,min=1"`
	Theme       *string `json:"theme" binding:"omitempty,oneof=fantasy sci-fi historical modern post-apocalyptic"`
}

func (r updateWorldRequest) toPatch() model.WorldPatch {
	return model.WorldPatch{Name: r.Name, Description: r.Description, Theme: r.Theme}
}

// --- Персонажи ---

type createCharacterRequest struct {
	WorldID     int64           `json:"worldId" binding:"required,gt=0"`
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Role        string          `json:"role" binding:"required,min=1"`
	Appearance  *string         `json:"appearance"`
	Personality string          `json:"personality" binding:"required,min=1"`
	Backstory   *string         `json:"backstory"`
	Memory      json.RawMessage `json:"memory" binding:"required"`
}

type updateCharacterRequest struct {
	Name                 *string  `json:"name" binding:"omitempty,min=1,max=200"`
	Role                 *string  `json:"role" binding:"omitempty,min=1"`
	Appearance           *string  `json:"appearance"`
	Personality          *string  `json:"personality" binding:"omitempty,min=1"`
	Backstory            *string  `json:"backstory"`
	CurrentMood          *string  `json:"currentMood" binding:"omitempty,min=1"`
	CurrentMoodIntensity *float64 `json:"currentMoodIntensity" binding:"omitempty,gte=0,lte=1"`
	CurrentMoodColor     *string  `json:"currentMoodColor" binding:"omitempty,hexcolor"`
}

func (r updateCharacterRequest) toPatch() model.CharacterPatch {
	return model.CharacterPatch{
		Name:                 r.Name,
		Role:                 r.Role,
		Appearance:           r.Appearance,
		Personality:          r.Personality,
		Backstory:            r.Backstory,
		CurrentMood:          r.CurrentMood,
		CurrentMoodIntensity: r.CurrentMoodIntensity,
		CurrentMoodColor:     r.CurrentMoodColor,
	}
}

type addFactRequest struct {
	Fact string `json:"fact" binding:"required,min=1"`
}

type analyzeMoodRequest struct {
	Text string `json:"text" binding:"required,min=1"`
}

// --- Чат ---

type createChatMessageRequest struct {
	CharacterID   int64    `json:"characterId" binding:"required,gt=0"`
	Content       string   `json:"content" binding:"required,min=1"`
	IsUserMessage *bool    `json:"isUserMessage" binding:"required"`
	Mood          *string  `json:"mood" binding:"omitempty,min=1"`
	MoodIntensity *float64 `json:"moodIntensity" binding:"omitempty,gte=0,lte=1"`
	MoodColor     *string  `json:"moodColor" binding:"omitempty,hexcolor"`
}

func (r createChatMessageRequest) toInsert(userID int64) model.InsertChatMessage {
	return model.InsertChatMessage{
		CharacterID:   r.CharacterID,
		UserID:        userID,
		IsUserMessage: *r.IsUserMessage,
		Content:       r.Content,
		Mood:          r.Mood,
		MoodIntensity: r.MoodIntensity,
		MoodColor:     r.MoodColor,
	}
}

type generateResponseRequest struct {
	CharacterID int64 `json:"characterId" binding:"required,gt=0"`
}

// --- Сцены ---

type createSceneRequest struct {
	WorldID            int64   `json:"worldId" binding:"required,gt=0"`
	Title              string  `json:"title" binding:"required,min=1,max=200"`
	Content            string  `json:"content" binding:"required,min=1"`
	StyleType          *string `json:"styleType" binding:"omitempty,oneof=narrative dialogue descriptive action poetic"`
	Tone               *string `json:"tone" binding:"omitempty,oneof=dramatic humorous mysterious romantic tense melancholic"`
	IncludedCharacters []int64 `json:"includedCharacters" binding:"omitempty,dive,gt=0"`
}

func (r createSceneRequest) toInput() service.CreateSceneInput {
	return service.CreateSceneInput{
		WorldID:            r.WorldID,
		Title:              r.Title,
		Content:            r.Content,
		StyleType:          r.StyleType,
		Tone:               r.Tone,
		IncludedCharacters: r.IncludedCharacters,
	}
}

type updateSceneRequest struct {
	Title              *string  `json:"title" binding:"omitempty,min=1,max=200"`
	Content            *string  `json:"content" binding:"omitempty,min=1"`
	StyleType          *string  `json:"styleType" binding:"omitempty,oneof=narrative dialogue descriptive action poetic"`
	Tone               *string  `json:"tone" binding:"omitempty,oneof=dramatic humorous mysterious romantic tense melancholic"`
	IncludedCharacters *[]int64 `json:"includedCharacters" binding:"omitempty,dive,gt=0"`
}

func (r updateSceneRequest) toPatch() model.ScenePatch {
	return model.ScenePatch{
		Title:              r.Title,
		Content:            r.Content,
		StyleType:          r.StyleType,
		Tone:               r.Tone,
		IncludedCharacters: r.IncludedCharacters,
	}
}

type generateSceneRequest struct {
	WorldID            int64   `json:"worldId" binding:"required,gt=0"`
	Title              string  `json:"title" binding:"required,min=1,max=200"`
	Prompt             string  `json:"prompt" binding:"required,min=1"`
	StyleType          *string `json:"styleType" binding:"omitempty,oneof=narrative dialogue descriptive action poetic"`
	Tone               *string `json:"tone" binding:"omitempty,oneof=dramatic humorous mysterious romantic tense melancholic"`
	Length             string  `json:"length" binding:"omitempty,oneof=short medium long"`
	IncludedCharacters []int64 `json:"includedCharacters" binding:"omitempty,dive,gt=0"`
}

func (r generateSceneRequest) toInput() service.SceneGenerationInput {
	return service.SceneGenerationInput{
		WorldID:            r.WorldID,
		Title:              r.Title,
		Prompt:             r.Prompt,
		StyleType:          r.StyleType,
		Tone:               r.Tone,
		Length:             r.Length,
		IncludedCharacters: r.IncludedCharacters,
	}
}

// --- Пользователи ---

type credentialsRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
