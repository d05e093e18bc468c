package service

import (
	"fmt"
	"strings"

	"dreamscribe/internal/model"
)

const noMemoriesPlaceholder = "You don't have any specific memories yet."

// buildCharacterSystemPrompt описывает персонажа для модели.
func buildCharacterSystemPrompt(c *model.Character, world *model.World) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are roleplaying as %s, %s", c.Name, c.Role)
	if world != nil {
		fmt.Fprintf(&b, " in the world of %s.\n\nWorld context: %s\n", world.Name, world.Description)
	} else {
		b.WriteString(".\n")
	}
	if c.Appearance != nil && *c.Appearance != "" {
		fmt.Fprintf(&b, "\nYour appearance: %s\n", *c.Appearance)
	}
	fmt.Fprintf(&b, "\nYour personality: %s\n", c.Personality)
	if c.Backstory != nil && *c.Backstory != "" {
		fmt.Fprintf(&b, "\nYour backstory: %s\n", *c.Backstory)
	}
	if c.CurrentMood != nil && *c.CurrentMood != "" {
		fmt.Fprintf(&b, "\nYour current mood: %s", *c.CurrentMood)
		if c.CurrentMoodIntensity != nil {
			fmt.Fprintf(&b, " (intensity %.0f%%)", *c.CurrentMoodIntensity*100)
		}
		b.WriteString("\n")
	}

	b.WriteString("\nImportant facts you know:\n")
	if len(c.Memory.Facts) == 0 {
		b.WriteString(noMemoriesPlaceholder + "\n")
	} else {
		for _, f := range c.Memory.Facts {
			fmt.Fprintf(&b, "- %s\n", f)
		}
	}

	fmt.Fprintf(&b, "\nStay in character as %s throughout your response. "+
		"Your response should reflect your personality, backstory, and current mood. "+
		"Reply only with what %s says or does, without any prefix.", c.Name, c.Name)
	return b.String()
}

func buildMoodPrompt(text string) string {
	return fmt.Sprintf(`Analyze the following text and determine the emotional mood of the speaker.

Text: %q

Respond with ONLY a JSON object in this format:
{"mood": "one of [neutral, happy, sad, angry, fearful, curious, excited, thoughtful, confused]", "intensity": <number between 0 and 1>, "dominantColor": "<hex color like #FFD700 that represents the mood>"}`, text)
}

func buildFactExtractionPrompt(text string, c *model.Character, world *model.World) string {
	var b strings.Builder
	b.WriteString("Extract important facts from the following text that would be relevant for a character to remember in future conversations.\n")
	b.WriteString("Focus on personal details, preferences, history, and narrative elements.\n")
	b.WriteString("Extract only clear facts, not assumptions or speculations.\n")
	if c != nil {
		worldName := "their world"
		if world != nil {
			worldName = world.Name
		}
		fmt.Fprintf(&b, "\nThe facts should be relevant to %s, a %s in the world of %s.\nConsider %s's personality: %s\n",
			c.Name, c.Role, worldName, c.Name, c.Personality)
	}
	fmt.Fprintf(&b, "\nText to analyze:\n%q\n\n", text)
	b.WriteString("Return ONLY a JSON array of string facts, with each fact being a complete, standalone statement.\n")
	b.WriteString(`Example: ["User's name is Alex", "User lives in Seattle", "User has a dog named Max"]`)
	return b.String()
}

// sceneWordCount переводит длину сцены в примерное число слов.
func sceneWordCount(length string) int {
	switch length {
	case SceneLengthMedium:
		return 500
	case SceneLengthLong:
		return 1000
	default:
		return 250
	}
}

func buildScenePrompt(world *model.World, characters []model.Character, in SceneGenerationInput) string {
	var b strings.Builder
	b.WriteString("You are an expert creative writer tasked with generating a scene for a fictional world.\n\n")
	fmt.Fprintf(&b, "World: %s\nWorld Description: %s\n\n", world.Name, world.Description)

	b.WriteString("Characters in the scene:\n")
	if len(characters) == 0 {
		b.WriteString("(none specified)\n")
	}
	for i, c := range characters {
		fmt.Fprintf(&b, "Character %d: %s, %s\nPersonality: %s\n\n", i+1, c.Name, c.Role, c.Personality)
	}

	fmt.Fprintf(&b, "\nStyle: %s\nTone: %s\nLength: Approximately %d words\n\n",
		valueOr(in.StyleType, model.StyleNarrative), valueOr(in.Tone, model.ToneDramatic), sceneWordCount(in.Length))
	fmt.Fprintf(&b, "Scene Prompt: %s\n\n", in.Prompt)
	b.WriteString("Write a compelling scene that includes the specified characters and fits the world description. ")
	b.WriteString("The scene should match the requested style and tone, while addressing the scene prompt. ")
	b.WriteString("Return only the scene text without a title.")
	return b.String()
}

func valueOr(p *string, def string) string {
	if p == nil || *p == "" {
		return def
	}
	return *p
}
