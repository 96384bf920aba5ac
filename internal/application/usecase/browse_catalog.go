package usecase

import (
	"context"
	"fmt"

	"github.com/truecost/mortgage-service/internal/application/dto"
	"github.com/truecost/mortgage-service/internal/domain/port"
)

// GetGovernmentNewsUseCase lists housing-finance announcements.
type GetGovernmentNewsUseCase struct {
	catalog port.ContentCatalog
}

// NewGetGovernmentNewsUseCase wires dependencies.
func NewGetGovernmentNewsUseCase(catalog port.ContentCatalog) *GetGovernmentNewsUseCase {
	return &GetGovernmentNewsUseCase{catalog: catalog}
}

// Execute returns the news headlines in catalog order.
func (uc *GetGovernmentNewsUseCase) Execute(ctx context.Context) ([]dto.NewsResponse, error) {
	items, err := uc.catalog.GovernmentNews(ctx)
	if err != nil {
		return nil, fmt.Errorf("government news: %w", err)
	}
	out := make([]dto.NewsResponse, 0, len(items))
	for _, n := range items {
		out = append(out, dto.NewsResponse{Title: n.Title, Date: n.Date})
	}
	return out, nil
}

// ListAgentsUseCase lists the agent directory.
type ListAgentsUseCase struct {
	catalog port.ContentCatalog
}

// NewListAgentsUseCase wires dependencies.
func NewListAgentsUseCase(catalog port.ContentCatalog) *ListAgentsUseCase {
	return &ListAgentsUseCase{catalog: catalog}
}

// Execute returns every agent in catalog order.
func (uc *ListAgentsUseCase) Execute(ctx context.Context) ([]dto.AgentResponse, error) {
	agents, err := uc.catalog.Agents(ctx)
	if err != nil {
		return nil, fmt.Errorf("agents: %w", err)
	}
	out := make([]dto.AgentResponse, 0, len(agents))
	for _, a := range agents {
		out = append(out, dto.AgentResponse{Name: a.Name, Phone: a.Phone, Company: a.Company})
	}
	return out, nil
}
