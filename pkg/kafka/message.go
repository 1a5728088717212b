package kafka

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// IncomingMessage wraps a fetched Kafka message with parsed metadata.
type IncomingMessage struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Partition int
	Offset    int64
	Timestamp time.Time
	Topic     string

	// Insight is populated by ParseCallInsight.
	Insight *CallInsight
}

// CallInsight is the payload the external call analysis pipeline publishes
// for each transcribed phone call. Numeric fields are pointers because the
// pipeline only emits what it could extract from the conversation.
type CallInsight struct {
	AgentID    string     `json:"agent_id"`
	ClientName string     `json:"client_name"`
	Phone      string     `json:"phone"`
	Location   string     `json:"location"`
	Rooms      *float64   `json:"rooms,omitempty"`
	Area       *float64   `json:"area,omitempty"`
	Price      *float64   `json:"price,omitempty"`
	Summary    string     `json:"summary"`
	CalledAt   *time.Time `json:"called_at,omitempty"`
}

// ParseCallInsight decodes the message value into a CallInsight.
func (m *IncomingMessage) ParseCallInsight() error {
	var insight CallInsight
	if err := json.Unmarshal(m.Value, &insight); err != nil {
		return errors.Wrap(err, "failed to unmarshal call insight")
	}
	if insight.AgentID == "" {
		return errors.New("call insight missing agent_id")
	}
	if insight.ClientName == "" {
		return errors.New("call insight missing client_name")
	}
	m.Insight = &insight
	return nil
}
