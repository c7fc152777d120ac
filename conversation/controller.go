// Package conversation manages the assistant transcript and the anomaly
// investigation flow on top of the state store.
package conversation

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"vitaldeck/catalog"
	"vitaldeck/derive"
	"vitaldeck/generator"
	"vitaldeck/llm"
	"vitaldeck/state"
)

const (
	assistantSystemInstruction = "You are a helpful health assistant. Use simple, everyday language. Be concise. Always end with 'Not medical advice'."
	summarizeSystemInstruction = "Summarize the user's input into a professional but simple health observation."

	fallbackSummary = "User noted lifestyle changes potentially impacting readings."
)

// Broadcaster pushes live events to connected dashboard clients
type Broadcaster interface {
	Broadcast(event string, payload interface{})
}

// ErrBusy is returned while an assistant request or demo turn is in flight
var ErrBusy = fmt.Errorf("assistant is busy")

// Controller mediates between the state store and the assistant boundary. It
// owns the busy flag and the request generation counter: every outbound
// request captures the current generation, and any action that resets the
// transcript bumps it, so a response resolving against a stale transcript is
// discarded instead of applied.
type Controller struct {
	store     *state.Store
	summaries []generator.Summary
	client    *llm.Client // nil when the assistant is disabled
	broker    Broadcaster
	log       zerolog.Logger

	mu         sync.Mutex
	busy       bool
	generation uint64
	demoCancel context.CancelFunc
	demoOn     bool

	// seams for tests
	after func(time.Duration) <-chan time.Time
	now   func() time.Time
	newID func() string
}

// NewController wires a controller over the store and summaries. client may
// be nil; the controller then degrades to canned behaviour.
func NewController(store *state.Store, summaries []generator.Summary, client *llm.Client, broker Broadcaster, log zerolog.Logger) *Controller {
	return &Controller{
		store:     store,
		summaries: summaries,
		client:    client,
		broker:    broker,
		log:       log,
		after:     time.After,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Busy reports whether an assistant request or demo turn is in flight
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// DemoPlaying reports whether the scripted demo is running
func (c *Controller) DemoPlaying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.demoOn
}

// Open opens the conversation panel
func (c *Controller) Open() {
	c.store.Dispatch(state.OpenChat{})
}

// Close closes the panel. Any in-progress investigation is discarded and a
// running demo stops scheduling further turns.
func (c *Controller) Close() {
	c.invalidate()
	c.store.Dispatch(state.CloseChat{})
}

// NewChat empties the transcript and discards any in-progress investigation
func (c *Controller) NewChat() {
	c.invalidate()
	c.store.Dispatch(state.NewChat{})
}

// Start begins an investigation for the given metric. The glucose anomaly
// plays the scripted demo; every other metric gets a generated opening turn.
func (c *Controller) Start(metricID string) error {
	m, ok := generator.Find(c.summaries, metricID)
	if !ok {
		return fmt.Errorf("unknown metric %q", metricID)
	}

	if metricID == "blood_glucose" {
		return c.PlayDemo(metricID)
	}

	direction := "lower"
	if m.LastValue > m.AvgValue {
		direction = "higher"
	}
	opening := state.ChatMessage{
		Role: state.RoleModel,
		Text: fmt.Sprintf("I noticed your %s is at %s %s — that's %s than your usual ~%.0f. Could you tell me if anything changed recently?",
			m.Name, derive.FormatValue(m.LastValue), m.Unit, direction, m.AvgValue),
	}

	c.invalidate()
	c.store.Dispatch(state.StartInvestigation{MetricID: metricID, Opening: []state.ChatMessage{opening}})
	return nil
}

// Send appends the user's message and requests one assistant reply. A failed
// or stale request leaves the transcript without a reply; the caller sees no
// error either way.
func (c *Controller) Send(ctx context.Context, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil
	}

	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	token := c.generation
	c.busy = true
	c.mu.Unlock()
	defer c.setBusy(false)

	userMsg := state.ChatMessage{Role: state.RoleUser, Text: message}
	next := c.store.Dispatch(state.AppendChatMessage{Message: userMsg})
	c.broker.Broadcast("chat_message", userMsg)

	if c.client == nil {
		c.log.Info().Msg("assistant disabled, no reply generated")
		return nil
	}

	system, contents := c.buildPrompt(next, message)
	reply, err := c.client.GenerateText(ctx, system, contents)
	if err != nil {
		c.log.Warn().Err(err).Msg("assistant request failed")
		return nil
	}
	if c.stale(token) {
		c.log.Debug().Msg("discarding assistant reply for reset conversation")
		return nil
	}
	if reply == "" {
		reply = "I've checked your data."
	}

	modelMsg := state.ChatMessage{Role: state.RoleModel, Text: reply}
	c.store.Dispatch(state.AppendChatMessage{Message: modelMsg})
	c.broker.Broadcast("chat_message", modelMsg)
	return nil
}

// Summarize asks the assistant to condense the transcript and moves the
// investigation to concluding. With the assistant disabled or failing, a
// failed request leaves the investigation active.
func (c *Controller) Summarize(ctx context.Context) error {
	st := c.store.State()
	if st.InvestigationState != state.InvestigationActive {
		return fmt.Errorf("no active investigation to summarize")
	}

	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	token := c.generation
	c.busy = true
	c.mu.Unlock()
	defer c.setBusy(false)

	summary := fallbackSummary
	if c.client != nil {
		lines := make([]string, 0, len(st.ChatHistory))
		for _, msg := range st.ChatHistory {
			lines = append(lines, fmt.Sprintf("%s: %s", msg.Role, msg.Text))
		}

		metricName := "metric"
		if m, ok := generator.Find(c.summaries, st.FocusedAnomalyMetricID); ok {
			metricName = m.Name
		}

		contents := fmt.Sprintf("Conversation History:\n%s\n\nSummarize the lifestyle factors contributing to this %s reading. Be very brief (1-2 sentences).",
			strings.Join(lines, "\n"), metricName)

		reply, err := c.client.GenerateText(ctx, summarizeSystemInstruction, contents)
		if err != nil {
			c.log.Warn().Err(err).Msg("summarize request failed")
			return nil
		}
		if reply != "" {
			summary = reply
		}
	}

	if c.stale(token) {
		c.log.Debug().Msg("discarding summary for reset conversation")
		return nil
	}

	c.store.Dispatch(state.ConcludeInvestigation{Summary: summary})
	return nil
}

// Finish resolves a concluded investigation. The doctor decision materializes
// one journal observation from the focused metric and summary; track keeps
// nothing. Conversation state always resets to none.
func (c *Controller) Finish(decision state.Decision) error {
	st := c.store.State()
	if st.InvestigationState != state.InvestigationConcluding {
		return fmt.Errorf("no concluded investigation to finish")
	}

	var obs *state.SavedObservation
	if decision == state.DecisionDoctor && st.InvestigationSummary != "" && st.FocusedAnomalyMetricID != "" {
		if m, ok := generator.Find(c.summaries, st.FocusedAnomalyMetricID); ok {
			obs = &state.SavedObservation{
				ID:                   c.newID(),
				Timestamp:            c.now().UnixMilli(),
				MetricID:             m.ID,
				MetricName:           m.Name,
				Value:                m.LastValue,
				Unit:                 m.Unit,
				Interpretation:       "Investigated Anomaly",
				ClinicalSignificance: "Linked to lifestyle factors.",
				UserNote:             st.InvestigationSummary,
			}
		}
	}

	c.invalidate()
	c.store.Dispatch(state.FinishInvestigation{Decision: decision, Observation: obs})
	return nil
}

// buildPrompt assembles the system instruction and context string for one
// assistant turn, mirroring the persona demographics, the focused metric or
// the focus-set stats, and the full transcript.
func (c *Controller) buildPrompt(st state.AppState, message string) (system, contents string) {
	personaID := "p1"
	if st.Persona != nil {
		personaID = st.Persona.ID
	}
	demographics := catalog.PersonaDemographics[personaID]

	focused, hasFocused := generator.Find(c.summaries, st.FocusedAnomalyMetricID)

	if st.InvestigationState == state.InvestigationActive && hasFocused {
		system = fmt.Sprintf("You are helping investigate an anomaly in %s. The current value is %s vs an average of %s. Ask the user questions to find lifestyle causes (sleep, stress, diet). Be brief.",
			focused.Name, derive.FormatValue(focused.LastValue), derive.FormatValue(focused.AvgValue))
	} else {
		system = assistantSystemInstruction
	}

	var situation string
	if hasFocused {
		situation = fmt.Sprintf("Anomaly: %s is %s.", focused.Name, derive.FormatValue(focused.LastValue))
	} else {
		stats := make([]string, 0, len(st.FocusMetricIDs))
		for _, m := range c.summaries {
			for _, id := range st.FocusMetricIDs {
				if m.ID == id {
					stats = append(stats, fmt.Sprintf("%s: %s %s (Typical: %.1f)", m.Name, derive.FormatValue(m.LastValue), m.Unit, m.AvgValue))
					break
				}
			}
		}
		situation = "Current Stats: " + strings.Join(stats, "; ")
	}

	history := make([]string, 0, len(st.ChatHistory))
	for _, msg := range st.ChatHistory {
		history = append(history, msg.Text)
	}

	contents = fmt.Sprintf("Context: Demographic: %s. %s\nHistory: %s\nUser: %s",
		demographics, situation, strings.Join(history, "\n"), message)
	return system, contents
}

// invalidate bumps the request generation and cancels any running demo, so
// in-flight resolutions and scheduled demo turns are discarded.
func (c *Controller) invalidate() {
	c.mu.Lock()
	c.generation++
	if c.demoCancel != nil {
		c.demoCancel()
		c.demoCancel = nil
	}
	c.demoOn = false
	c.mu.Unlock()
}

func (c *Controller) stale(token uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation != token
}

func (c *Controller) setBusy(v bool) {
	c.mu.Lock()
	c.busy = v
	c.mu.Unlock()
}
