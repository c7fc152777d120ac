package conversation

import (
	"context"
	"fmt"
	"time"

	"vitaldeck/derive"
	"vitaldeck/generator"
	"vitaldeck/state"
)

// Demo pacing. Model turns simulate typing before appearing; user turns
// answer a beat later.
const (
	demoLeadIn     = 500 * time.Millisecond
	demoModelDelay = 1500 * time.Millisecond
	demoModelPause = 1200 * time.Millisecond
	demoUserDelay  = 1000 * time.Millisecond
	demoUserPause  = 800 * time.Millisecond
)

// demoScript is the fixed five-turn glucose investigation, with the opening
// turn interpolating the metric's current reading and average.
func demoScript(m generator.Summary) []state.ChatMessage {
	return []state.ChatMessage{
		{Role: state.RoleModel, Text: fmt.Sprintf("Your blood glucose is at %s %s today — that's noticeably higher than your usual average of ~%.0f. I've noted this down. Let me ask a few questions to understand what might have caused this. Did anything change recently — a heavy meal, missed medication, or a stressful day?", derive.FormatValue(m.LastValue), m.Unit, m.AvgValue)},
		{Role: state.RoleUser, Text: "I missed my medication yesterday and had a late dinner."},
		{Role: state.RoleModel, Text: "Got it, I'll note that down. Missed medication and late meals are both common causes of glucose spikes. How has your sleep been the last couple of nights?"},
		{Role: state.RoleUser, Text: "Not great, maybe 5 hours."},
		{Role: state.RoleModel, Text: "That tracks — poor sleep can reduce insulin sensitivity, which makes glucose harder to regulate. I'm seeing a pattern: missed dose + late meal + short sleep. I'll keep tracking your glucose over the next few days. If it stays elevated, we can flag this for your doctor."},
	}
}

// PlayDemo starts an investigation for the metric and plays the scripted
// conversation into the transcript on a timer, without calling the assistant
// boundary. It preempts manual input and is cancelled by closing the panel
// or starting a new chat.
func (c *Controller) PlayDemo(metricID string) error {
	m, ok := generator.Find(c.summaries, metricID)
	if !ok {
		return fmt.Errorf("unknown metric %q", metricID)
	}

	c.mu.Lock()
	c.generation++
	if c.demoCancel != nil {
		c.demoCancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.demoCancel = cancel
	c.demoOn = true
	c.mu.Unlock()

	c.store.Dispatch(state.StartInvestigation{MetricID: metricID})
	go c.runDemo(ctx, demoScript(m))
	return nil
}

// runDemo plays the script until it ends or ctx is cancelled. Cancellation is
// checked before every append, so a closed panel never gains another turn.
func (c *Controller) runDemo(ctx context.Context, script []state.ChatMessage) {
	defer func() {
		c.mu.Lock()
		c.demoOn = false
		c.busy = false
		c.mu.Unlock()
	}()

	if !c.sleep(ctx, demoLeadIn) {
		return
	}

	for _, msg := range script {
		if msg.Role == state.RoleModel {
			c.setBusy(true)
			if !c.sleep(ctx, demoModelDelay) {
				return
			}
			if !c.appendDemoTurn(ctx, msg) {
				return
			}
			c.setBusy(false)
			if !c.sleep(ctx, demoModelPause) {
				return
			}
		} else {
			if !c.sleep(ctx, demoUserDelay) {
				return
			}
			if !c.appendDemoTurn(ctx, msg) {
				return
			}
			if !c.sleep(ctx, demoUserPause) {
				return
			}
		}
	}
}

func (c *Controller) appendDemoTurn(ctx context.Context, msg state.ChatMessage) bool {
	if ctx.Err() != nil {
		return false
	}
	c.store.Dispatch(state.AppendChatMessage{Message: msg})
	c.broker.Broadcast("chat_message", msg)
	return true
}

// sleep waits d or reports cancellation
func (c *Controller) sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-c.after(d):
		return true
	}
}
