// Package processor turns consumed call insights into stored call leads.
package processor

import (
	"context"

	"github.com/Ramsey-B/clover/pkg/kafka"
	"github.com/Ramsey-B/clover/pkg/logger"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

// CallLeadCreator persists call leads.
type CallLeadCreator interface {
	Create(ctx context.Context, call *models.CallLead) (*models.CallLead, error)
}

// CallProcessor stores one call lead per consumed call insight.
type CallProcessor struct {
	calls  CallLeadCreator
	logger logger.Logger
}

// NewCallProcessor creates a new call processor
func NewCallProcessor(calls CallLeadCreator, logger logger.Logger) *CallProcessor {
	return &CallProcessor{
		calls:  calls,
		logger: logger,
	}
}

// HandleMessage converts a parsed call insight into a call lead row.
// Returning an error leaves the message uncommitted for redelivery.
func (p *CallProcessor) HandleMessage(ctx context.Context, msg *kafka.IncomingMessage) error {
	ctx, span := tracing.StartSpan(ctx, "processor.CallProcessor.HandleMessage")
	defer span.End()

	insight := msg.Insight

	lead, err := p.calls.Create(ctx, &models.CallLead{
		AgentID:    insight.AgentID,
		ClientName: insight.ClientName,
		Phone:      insight.Phone,
		Location:   insight.Location,
		Rooms:      insight.Rooms,
		Area:       insight.Area,
		Price:      insight.Price,
		Summary:    insight.Summary,
		CalledAt:   insight.CalledAt,
	})
	if err != nil {
		return err
	}

	p.logger.WithContext(ctx).WithFields(map[string]any{
		"call_id":  lead.ID,
		"agent_id": lead.AgentID,
	}).Info("Stored call lead from call insight")
	return nil
}
