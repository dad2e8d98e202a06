// Package command turns typed REPL lines into intents and prints
// notifications back to the user.
package command

import (
	"context"
	"regexp"
	"strings"

	"github.com/hammamikhairi/deliciously/internal/domain"
	"github.com/hammamikhairi/deliciously/internal/logger"
)

// Compile-time interface check.
var _ domain.IntentParser = (*KeywordParser)(nil)

// FieldSeparator splits the fields of an add/edit command.
const FieldSeparator = "|"

// KeywordParser matches user input to intents using keywords and simple
// patterns. The first capture group, when present, becomes the payload.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex  *regexp.Regexp
	intent domain.IntentType
	// fragment, when set, is the payload for a bare navigation keyword.
	fragment string
}

// NewKeywordParser creates a keyword-based intent parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.patterns = []patternRule{
		{regex: regexp.MustCompile(`(?i)^(quit|exit|q)$`), intent: domain.IntentQuit},
		{regex: regexp.MustCompile(`(?i)^(help|h|\?)$`), intent: domain.IntentHelp},

		{regex: regexp.MustCompile(`(?i)^(home|featured)$`), intent: domain.IntentNavigate, fragment: "/"},
		{regex: regexp.MustCompile(`(?i)^(recipes|browse|list|ls)$`), intent: domain.IntentNavigate, fragment: "/recipes"},
		{regex: regexp.MustCompile(`(?i)^(favorites|favourites|favs)$`), intent: domain.IntentNavigate, fragment: "/favorites"},
		{regex: regexp.MustCompile(`(?i)^admin$`), intent: domain.IntentNavigate, fragment: "/admin"},
		{regex: regexp.MustCompile(`(?i)^(?:go|goto|cd)\s+(\S+)$`), intent: domain.IntentNavigate},

		{regex: regexp.MustCompile(`(?i)^(?:open|show)\s+(\S+)$`), intent: domain.IntentOpenRecipe},
		{regex: regexp.MustCompile(`^(\d{1,3})$`), intent: domain.IntentOpenRecipe},

		{regex: regexp.MustCompile(`(?i)^(?:search|find|/)(?:\s+(.*))?$`), intent: domain.IntentSearch},
		{regex: regexp.MustCompile(`(?i)^(?:category|cat)\s+(\S+)$`), intent: domain.IntentFilterCategory},
		{regex: regexp.MustCompile(`(?i)^sort(?:\s+by)?\s+(\S+)$`), intent: domain.IntentSort},
		{regex: regexp.MustCompile(`(?i)^(?:view|layout)\s+(grid|list)$`), intent: domain.IntentViewMode},
		{regex: regexp.MustCompile(`(?i)^(grid)$`), intent: domain.IntentViewMode},

		{regex: regexp.MustCompile(`(?i)^(?:fav|favorite|favourite|unfav|star)(?:\s+(\S+))?$`), intent: domain.IntentToggleFavorite},

		{regex: regexp.MustCompile(`(?i)^(?:check|tick|uncheck)\s+(\d{1,3})$`), intent: domain.IntentCheckIngredient},

		{regex: regexp.MustCompile(`(?i)^(?:pdf|export)\s+(?:favorites|favourites|favs|all)$`), intent: domain.IntentExportFavorites},
		{regex: regexp.MustCompile(`(?i)^(?:pdf|export)(?:\s+(\S+))?$`), intent: domain.IntentExportRecipe},

		{regex: regexp.MustCompile(`(?i)^login(?:\s+(.*))?$`), intent: domain.IntentLogin},
		{regex: regexp.MustCompile(`(?i)^(logout|log out|signout)$`), intent: domain.IntentLogout},

		{regex: regexp.MustCompile(`(?i)^(?:add|new)\s+(.+)$`), intent: domain.IntentAddRecipe},
		{regex: regexp.MustCompile(`(?i)^(?:edit|update)\s+(.+)$`), intent: domain.IntentEditRecipe},
		{regex: regexp.MustCompile(`(?i)^(?:delete|del|rm|remove)\s+(\S+)$`), intent: domain.IntentDeleteRecipe},
	}
	return p
}

// Parse converts user input into an intent.
func (p *KeywordParser) Parse(ctx context.Context, input string) (*domain.Intent, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return &domain.Intent{Type: domain.IntentUnknown}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	for _, rule := range p.patterns {
		m := rule.regex.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		p.log.Debug("matched intent: %s", rule.intent)

		intent := &domain.Intent{Type: rule.intent}
		switch {
		case rule.fragment != "":
			intent.Payload = rule.fragment
		case len(m) > 1:
			intent.Payload = strings.TrimSpace(m[1])
		}

		switch rule.intent {
		case domain.IntentViewMode:
			intent.Payload = strings.ToLower(intent.Payload)
		case domain.IntentLogin:
			if f := strings.Fields(intent.Payload); len(f) > 0 {
				intent.Args = f
			}
		case domain.IntentAddRecipe:
			intent.Args = splitFields(intent.Payload)
		case domain.IntentEditRecipe:
			id, rest, _ := strings.Cut(intent.Payload, " ")
			intent.Payload = id
			intent.Args = splitFields(rest)
		}
		return intent, nil
	}

	p.log.Debug("no match, returning unknown intent")
	return &domain.Intent{Type: domain.IntentUnknown, Payload: trimmed}, nil
}

// splitFields splits an add/edit body on FieldSeparator, keeping empty
// fields so positions stay stable.
func splitFields(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, FieldSeparator)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
