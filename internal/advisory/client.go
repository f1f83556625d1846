// Package advisory talks to the generative-text service behind the tutor
// chat and the bus tracker's traffic insight.
//
// The client never returns an error to its callers. When the service fails
// the result is a fixed fallback with Degraded set, so every view always has
// something to render.
package advisory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"schoolhub/internal/logger"
	"schoolhub/internal/models"
)

const (
	TutorFallback   = "I'm sorry, I'm having trouble connecting right now. Please try again in a moment."
	TrafficFallback = "Unable to connect to live traffic services right now. Please check back shortly."
)

// ErrNotConfigured is returned by the generator used when no API key is set
var ErrNotConfigured = errors.New("advisory service credential not configured")

// Turn is one message of conversation history
type Turn struct {
	Role models.ChatRole
	Text string
}

// LatLng is an optional location to ground map answers on
type LatLng struct {
	Latitude  float64
	Longitude float64
}

// Request is a single call to the generative service
type Request struct {
	SystemInstruction string
	History           []Turn
	Prompt            string
	// Maps asks the service to ground its answer on map data
	Maps     bool
	Location *LatLng
}

// Citation is a grounding source returned with an answer
type Citation struct {
	URI   string
	Title string
}

// Response is the service's answer
type Response struct {
	Text      string
	Citations []Citation
}

// Generator is the transport to the generative service
type Generator interface {
	Generate(ctx context.Context, req Request) (Response, error)
}

// Reply is the tutor's answer to one message
type Reply struct {
	Text     string `json:"text"`
	Degraded bool   `json:"degraded"`
}

// Client formats prompts and absorbs service failures
type Client struct {
	gen Generator
	log logger.Logger
}

// New creates a client over gen
func New(gen Generator, log logger.Logger) *Client {
	return &Client{gen: gen, log: log}
}

// TutorReply asks the tutor to answer message given the prior history.
// An empty instruction uses a subject-specific default.
func (c *Client) TutorReply(ctx context.Context, subject string, history []models.ChatMessage, message, instruction string) Reply {
	if instruction == "" {
		instruction = defaultTutorInstruction(subject)
	}

	req := Request{
		SystemInstruction: instruction,
		History:           toTurns(history),
		Prompt:            message,
	}

	resp, err := c.gen.Generate(ctx, req)
	if err != nil {
		c.log.Warn("tutor reply failed, using fallback", "subject", subject, err)
		return Reply{Text: TutorFallback, Degraded: true}
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		c.log.Warn("tutor reply was empty, using fallback", "subject", subject)
		return Reply{Text: TutorFallback, Degraded: true}
	}
	return Reply{Text: text}
}

// TrafficAdvisory summarises road conditions around place. With a location
// the request is grounded on those coordinates.
func (c *Client) TrafficAdvisory(ctx context.Context, place string, loc *LatLng) models.TrafficAdvisory {
	req := Request{
		Prompt: trafficPrompt(place, loc),
		Maps:   true,
	}
	if loc != nil {
		l := *loc
		req.Location = &l
	}

	resp, err := c.gen.Generate(ctx, req)
	if err != nil {
		c.log.Warn("traffic advisory failed, using fallback", "place", place, err)
		return models.TrafficAdvisory{Text: TrafficFallback, Degraded: true}
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return models.TrafficAdvisory{Text: TrafficFallback, Degraded: true}
	}

	advisory := models.TrafficAdvisory{Text: text}
	for _, cite := range resp.Citations {
		if cite.URI != "" {
			advisory.MapLink = cite.URI
			advisory.SourceTitle = cite.Title
			break
		}
	}
	return advisory
}

func defaultTutorInstruction(subject string) string {
	if subject == "" {
		subject = "general studies"
	}
	return fmt.Sprintf("You are a friendly, patient school tutor helping a student with %s. "+
		"Explain concepts step by step in simple language, keep answers short, "+
		"and end with a question that checks understanding.", subject)
}

func trafficPrompt(place string, loc *LatLng) string {
	if loc != nil {
		return fmt.Sprintf("A school bus is currently at latitude %.5f, longitude %.5f (%s). "+
			"In one or two sentences, describe current traffic conditions nearby and any likely delay.",
			loc.Latitude, loc.Longitude, place)
	}
	return fmt.Sprintf("A school bus is travelling near %s. "+
		"In one or two sentences, describe current traffic conditions there and any likely delay.", place)
}

// toTurns converts chat history, dropping assistant turns before the first
// user turn: the service expects a conversation to open with the user.
func toTurns(history []models.ChatMessage) []Turn {
	turns := make([]Turn, 0, len(history))
	for _, m := range history {
		if len(turns) == 0 && m.Role != models.ChatRoleUser {
			continue
		}
		turns = append(turns, Turn{Role: m.Role, Text: m.Text})
	}
	return turns
}

// disabledGenerator stands in when no API key is configured
type disabledGenerator struct{}

func (disabledGenerator) Generate(context.Context, Request) (Response, error) {
	return Response{}, ErrNotConfigured
}

// Disabled returns a generator whose every call fails with ErrNotConfigured
func Disabled() Generator {
	return disabledGenerator{}
}
