package antipattern

import "github.com/archsketch-ai/engine/calibration"

// AntiPattern is one catalog rule. Expr is a CEL boolean expression
// evaluated against the detection environment (see NewDetector for the
// declared variables).
type AntiPattern struct {
	ID          string               `json:"id" yaml:"id"`
	Title       string               `json:"title" yaml:"title"`
	Description string               `json:"description" yaml:"description"`
	Severity    calibration.Severity `json:"severity" yaml:"severity"`
	Expr        string               `json:"expr" yaml:"expr"`
}

// Rule returns the calibration-relevant view of the anti-pattern.
func (p AntiPattern) Rule() calibration.Rule {
	return calibration.Rule{ID: p.ID, Severity: p.Severity}
}

// catalog is the built-in rule set. It is constructed once and never
// mutated; Catalog hands out copies.
var catalog = []AntiPattern{
	{
		ID:          "public-database",
		Title:       "Database in the external tier",
		Description: "A database node is placed in the external tier, exposing stored data directly to the internet.",
		Severity:    calibration.SeverityCritical,
		Expr:        `nodes.exists(n, n.type == 'database' && n.tier == 'external')`,
	},
	{
		ID:          "database-in-dmz",
		Title:       "Database in the DMZ",
		Description: "A database node sits in the DMZ instead of an internal or data tier.",
		Severity:    calibration.SeverityHigh,
		Expr:        `nodes.exists(n, n.type == 'database' && n.tier == 'dmz')`,
	},
	{
		ID:          "direct-user-to-database",
		Title:       "User connects directly to a database",
		Description: "A connection runs from a user node straight to a database with no application tier between them.",
		Severity:    calibration.SeverityHigh,
		Expr: `connections.exists(c, c.source in nodeTypes && c.target in nodeTypes ` +
			`&& nodeTypes[c.source] == 'user' && nodeTypes[c.target] == 'database')`,
	},
	{
		ID:          "unencrypted-external-ingress",
		Title:       "Unencrypted traffic from the external tier",
		Description: "Traffic entering from an external-tier node is neither encrypted nor blocked.",
		Severity:    calibration.SeverityHigh,
		Expr: `connections.exists(c, c.source in nodeTiers && nodeTiers[c.source] == 'external' ` +
			`&& c.flowType != 'encrypted' && c.flowType != 'blocked')`,
	},
	{
		ID:          "no-firewall",
		Title:       "No firewall anywhere in the topology",
		Description: "The diagram has nodes but no firewall component.",
		Severity:    calibration.SeverityMedium,
		Expr:        `size(nodes) > 0 && !nodes.exists(n, n.type == 'firewall')`,
	},
	{
		ID:          "flat-network",
		Title:       "No tier segmentation",
		Description: "A topology of meaningful size has no node assigned to any tier.",
		Severity:    calibration.SeverityMedium,
		Expr:        `size(nodes) > 3 && !nodes.exists(n, n.tier != '')`,
	},
	{
		ID:          "uncached-database",
		Title:       "Database without a cache",
		Description: "The topology includes a database but no cache layer in front of it.",
		Severity:    calibration.SeverityLow,
		Expr:        `nodes.exists(n, n.type == 'database') && !nodes.exists(n, n.type == 'cache')`,
	},
}

// Catalog returns a copy of the built-in rule set.
func Catalog() []AntiPattern {
	out := make([]AntiPattern, len(catalog))
	copy(out, catalog)
	return out
}

// CatalogRules returns the built-in rule set as calibration rules.
func CatalogRules() []calibration.Rule {
	out := make([]calibration.Rule, len(catalog))
	for i, p := range catalog {
		out[i] = p.Rule()
	}
	return out
}
