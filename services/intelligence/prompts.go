// File: services/intelligence/prompts.go
package ai

import (
	"fmt"
	"strings"

	"estately/models"
)

const systemPrompt = `You are Estately, a friendly real-estate assistant. You help users find
properties to buy or rent through conversation. Whenever a user message
contains information about what they are looking for (buy vs rent, property
category or type, location, budget), call extract_intent_and_slots with that
information. Only include values the user actually stated. For unrelated
questions answer directly, and use search_web or save_memory when appropriate.`

const clarificationReply = "Sorry, I didn't quite catch that. Could you tell me a bit more about the property you're looking for?"

const searchApologyReply = "Sorry, I couldn't search for properties right now. Please try again in a moment."

const noMatchReply = "I couldn't find any properties matching your requirements. Would you like to broaden your search, for example with a different location or budget?"

// followUpQuestions maps each slot to its fixed-template question. The
// dialogue policy asks for exactly one missing field per turn, in priority
// order.
var followUpQuestions = map[models.SlotField]string{
	models.FieldAction:   "Are you looking to buy or rent?",
	models.FieldCategory: "Are you interested in a residential or commercial property?",
	models.FieldType:     "What type of property do you have in mind - a flat, villa, plot or house?",
	models.FieldLocation: "Which location or city should I search in?",
	models.FieldBudget:   "What is your budget range?",
}

// formatProperties renders search results as summary blocks: title, location
// and price always, area/bedrooms/bathrooms/contact when known.
func formatProperties(props []models.Property) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("I found %d matching propert", len(props)))
	if len(props) == 1 {
		sb.WriteString("y:\n")
	} else {
		sb.WriteString("ies:\n")
	}

	for i, p := range props {
		sb.WriteString(fmt.Sprintf("\n%d. %s\n", i+1, p.Title))
		location := p.Location
		if p.City != "" && !strings.EqualFold(p.City, p.Location) {
			location = fmt.Sprintf("%s, %s", p.Location, p.City)
		}
		sb.WriteString(fmt.Sprintf("   Location: %s\n", location))
		sb.WriteString(fmt.Sprintf("   Price: %.0f\n", p.Price))
		if p.AreaSqFt > 0 {
			sb.WriteString(fmt.Sprintf("   Area: %.0f sq.ft\n", p.AreaSqFt))
		}
		if p.Bedrooms > 0 {
			sb.WriteString(fmt.Sprintf("   Bedrooms: %d\n", p.Bedrooms))
		}
		if p.Bathrooms > 0 {
			sb.WriteString(fmt.Sprintf("   Bathrooms: %d\n", p.Bathrooms))
		}
		if p.Contact != "" {
			sb.WriteString(fmt.Sprintf("   Contact: %s\n", p.Contact))
		}
	}
	return sb.String()
}

// titlePrompt builds the one-shot prompt used for conversation titles.
func titlePrompt(firstMessage string) string {
	return fmt.Sprintf(
		"Generate a short title (at most five words, no quotes) for a conversation that starts with this message:\n\n%s",
		firstMessage,
	)
}
