package model

import (
	"fmt"
	"strings"
	"time"
)

// MaxConversationHistory - сколько последних обменов репликами хранится в памяти персонажа.
const MaxConversationHistory = 10

// CharacterMemory - типизированная память персонажа.
type CharacterMemory struct {
	InteractionCount int                    `json:"interactionCount"`
	Events           []MemoryEvent          `json:"events"`
	Facts            []string               `json:"facts"`
	Conversations    []ConversationExchange `json:"conversations"`
}

// MemoryEvent - значимое событие, которое помнит персонаж.
type MemoryEvent struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	At          time.Time `json:"at"`
}

// ConversationExchange - одна пара "реплика пользователя / ответ персонажа".
type ConversationExchange struct {
	UserMessage       string    `json:"userMessage"`
	CharacterResponse string    `json:"characterResponse"`
	Timestamp         time.Time `json:"timestamp"`
}

// NewCharacterMemory возвращает пустую память с инициализированными срезами.
func NewCharacterMemory() CharacterMemory {
	return CharacterMemory{
		Events:        []MemoryEvent{},
		Facts:         []string{},
		Conversations: []ConversationExchange{},
	}
}

// Clone делает глубокую копию; nil-срезы превращаются в пустые, чтобы JSON всегда отдавал [].
func (m CharacterMemory) Clone() CharacterMemory {
	cp := CharacterMemory{
		InteractionCount: m.InteractionCount,
		Events:           make([]MemoryEvent, len(m.Events)),
		Facts:            make([]string, len(m.Facts)),
		Conversations:    make([]ConversationExchange, len(m.Conversations)),
	}
	copy(cp.Events, m.Events)
	copy(cp.Facts, m.Facts)
	copy(cp.Conversations, m.Conversations)
	return cp
}

// Merge выполняет поверхностное слияние: ключи, присутствующие в патче, заменяют
// значения, остальные сохраняются.
func (m CharacterMemory) Merge(p MemoryPatch) CharacterMemory {
	merged := m.Clone()
	if p.InteractionCount != nil {
		merged.InteractionCount = *p.InteractionCount
	}
	if p.Events != nil {
		merged.Events = append([]MemoryEvent{}, (*p.Events)...)
	}
	if p.Facts != nil {
		merged.Facts = append([]string{}, (*p.Facts)...)
	}
	if p.Conversations != nil {
		merged.Conversations = trimConversations(*p.Conversations)
	}
	return merged
}

// HasFact проверяет наличие факта без учета регистра.
func (m CharacterMemory) HasFact(fact string) bool {
	for _, f := range m.Facts {
		if strings.EqualFold(strings.TrimSpace(f), strings.TrimSpace(fact)) {
			return true
		}
	}
	return false
}

// WithFacts возвращает список фактов с добавленными новыми (без дублей).
func (m CharacterMemory) WithFacts(facts ...string) []string {
	out := CharacterMemory{Facts: append([]string{}, m.Facts...)}
	for _, f := range facts {
		f = strings.TrimSpace(f)
		if f != "" && !out.HasFact(f) {
			out.Facts = append(out.Facts, f)
		}
	}
	return out.Facts
}

// WithConversation возвращает историю обменов с добавленной записью, обрезанную до MaxConversationHistory.
func (m CharacterMemory) WithConversation(ex ConversationExchange) []ConversationExchange {
	return trimConversations(append(append([]ConversationExchange{}, m.Conversations...), ex))
}

func trimConversations(c []ConversationExchange) []ConversationExchange {
	if len(c) > MaxConversationHistory {
		c = c[len(c)-MaxConversationHistory:]
	}
	return append([]ConversationExchange{}, c...)
}

// MemoryPatch - частичное обновление памяти. Присутствующие ключи заменяются целиком.
type MemoryPatch struct {
	InteractionCount *int                    `json:"interactionCount,omitempty"`
	Events           *[]MemoryEvent          `json:"events,omitempty"`
	Facts            *[]string               `json:"facts,omitempty"`
	Conversations    *[]ConversationExchange `json:"conversations,omitempty"`
}

// IsEmpty сообщает, что патч не содержит ни одного ключа.
func (p MemoryPatch) IsEmpty() bool {
	return p.InteractionCount == nil && p.Events == nil && p.Facts == nil && p.Conversations == nil
}

// Validate проверяет значения ключей патча.
func (p MemoryPatch) Validate() error {
	if p.InteractionCount != nil && *p.InteractionCount < 0 {
		return fmt.Errorf("%w: interactionCount must be >= 0", ErrInvalidInput)
	}
	if p.Facts != nil {
		for i, f := range *p.Facts {
			if strings.TrimSpace(f) == "" {
				return fmt.Errorf("%w: facts[%d] must not be empty", ErrInvalidInput, i)
			}
		}
	}
	if p.Events != nil {
		for i, e := range *p.Events {
			if e.Type == "" || e.Description == "" {
				return fmt.Errorf("%w: events[%d] requires type and description", ErrInvalidInput, i)
			}
		}
	}
	return nil
}
