package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"vitaldeck/catalog"
	"vitaldeck/llm"
	"vitaldeck/state"
)

// ClusterSuggestion is the structured result of an AI grouping request
type ClusterSuggestion struct {
	MetricIDs   []string `json:"metricIds"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Narrative   string   `json:"narrative"`
	Icon        string   `json:"icon"`
}

var (
	clusterSchemaOnce sync.Once
	clusterSchema     json.RawMessage
	clusterSchemaErr  error
)

// SuggestCluster asks the assistant to assemble a metric group for a
// free-text goal. The response shape is constrained by a request-side schema;
// any request or parse failure resolves to nil rather than an error.
func (c *Controller) SuggestCluster(ctx context.Context, goal string) *ClusterSuggestion {
	goal = strings.TrimSpace(goal)
	if goal == "" || c.client == nil {
		return nil
	}

	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return nil
	}
	c.busy = true
	c.mu.Unlock()
	defer c.setBusy(false)

	clusterSchemaOnce.Do(func() {
		clusterSchema, clusterSchemaErr = llm.SchemaFor(&ClusterSuggestion{})
	})
	if clusterSchemaErr != nil {
		c.log.Error().Err(clusterSchemaErr).Msg("cluster schema reflection failed")
		return nil
	}

	info := make([]string, 0, len(catalog.Metrics))
	for _, m := range catalog.Metrics {
		info = append(info, fmt.Sprintf("%s: %s (%s)", m.ID, m.Name, m.Description))
	}
	contents := fmt.Sprintf("Goal: %s\nAvailable Metrics: %s", goal, strings.Join(info, ", "))

	var suggestion ClusterSuggestion
	if err := c.client.GenerateJSON(ctx, "", contents, clusterSchema, &suggestion); err != nil {
		c.log.Warn().Err(err).Msg("cluster suggestion failed")
		return nil
	}
	return &suggestion
}

// SaveSuggestedTemplate materializes an AI suggestion as a custom template
func (c *Controller) SaveSuggestedTemplate(s ClusterSuggestion) catalog.Template {
	icon := s.Icon
	if icon == "" {
		icon = "✨"
	}
	t := catalog.Template{
		ID:          fmt.Sprintf("custom_%d", c.now().UnixMilli()),
		Name:        s.Title,
		Icon:        icon,
		Description: s.Description,
		MetricIDs:   s.MetricIDs,
		Narrative:   s.Narrative,
		Color:       "from-violet-500 to-indigo-600",
		IsCustom:    true,
	}
	c.store.Dispatch(state.SaveCustomTemplate{Template: t})
	return t
}

// SaveManualTemplate materializes a hand-picked metric group
func (c *Controller) SaveManualTemplate(name string, metricIDs []string) (catalog.Template, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(metricIDs) == 0 {
		return catalog.Template{}, fmt.Errorf("a template needs a name and at least one metric")
	}
	t := catalog.Template{
		ID:          fmt.Sprintf("custom_%d", c.now().UnixMilli()),
		Name:        name,
		Icon:        "🛠️",
		Description: "Hand-picked Group",
		MetricIDs:   metricIDs,
		Narrative:   "This is a group of statistics you chose to track together based on your own personal health goals.",
		Color:       "from-gray-700 to-gray-900",
		IsCustom:    true,
	}
	c.store.Dispatch(state.SaveCustomTemplate{Template: t})
	return t, nil
}
