package catalog

import (
	"context"
	"slices"

	"github.com/truecost/mortgage-service/internal/domain/port"
)

var _ port.ContentCatalog = (*StaticCatalog)(nil)

var governmentNews = []port.NewsItem{
	{Title: "RBI Issues Guidelines on Housing Finance", Date: "Nov 28, 2025"},
	{Title: "Government launches Affordable Housing Scheme Update", Date: "Nov 15, 2025"},
	{Title: "Home Loan Eligibility Criteria Simplified", Date: "Oct 30, 2025"},
	{Title: "New Tax Benefits on Home Loan Interest Announced", Date: "Oct 10, 2025"},
}

var agentDirectory = []port.Agent{
	{Name: "Anil Kapoor", Phone: "+91-98765-43210", Company: "Sunrise Lending"},
	{Name: "Priya Sharma", Phone: "+91-91234-56789", Company: "HomeFirst Advisors"},
	{Name: "Ramesh Iyer", Phone: "+91-99887-76655", Company: "Capital Housing"},
}

// StaticCatalog serves a curated, compiled-in set of listings.
type StaticCatalog struct{}

// NewStaticCatalog returns the built-in catalog.
func NewStaticCatalog() *StaticCatalog {
	return &StaticCatalog{}
}

// GovernmentNews returns a copy of the curated headlines, newest first.
func (StaticCatalog) GovernmentNews(context.Context) ([]port.NewsItem, error) {
	return slices.Clone(governmentNews), nil
}

// Agents returns a copy of the agent directory.
func (StaticCatalog) Agents(context.Context) ([]port.Agent, error) {
	return slices.Clone(agentDirectory), nil
}
