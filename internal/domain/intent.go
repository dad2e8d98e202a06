package domain

// IntentType classifies what the user wants to do.
type IntentType int

const (
	IntentUnknown IntentType = iota
	IntentNavigate            // payload: fragment
	IntentOpenRecipe          // payload: recipe id
	IntentSearch              // payload: query text (may be empty)
	IntentFilterCategory      // payload: category name
	IntentSort                // payload: sort key
	IntentViewMode            // payload: grid|list
	IntentToggleFavorite      // payload: recipe id
	IntentCheckIngredient     // payload: 1-based ingredient number
	IntentExportRecipe        // payload: recipe id (empty = current)
	IntentExportFavorites
	IntentLogin  // args: username, password
	IntentLogout
	IntentAddRecipe    // payload: form text
	IntentEditRecipe   // args: id, form text
	IntentDeleteRecipe // payload: recipe id
	IntentHelp
	IntentQuit
)

// String returns a human-readable intent type.
func (i IntentType) String() string {
	switch i {
	case IntentNavigate:
		return "navigate"
	case IntentOpenRecipe:
		return "open_recipe"
	case IntentSearch:
		return "search"
	case IntentFilterCategory:
		return "filter_category"
	case IntentSort:
		return "sort"
	case IntentViewMode:
		return "view_mode"
	case IntentToggleFavorite:
		return "toggle_favorite"
	case IntentCheckIngredient:
		return "check_ingredient"
	case IntentExportRecipe:
		return "export_recipe"
	case IntentExportFavorites:
		return "export_favorites"
	case IntentLogin:
		return "login"
	case IntentLogout:
		return "logout"
	case IntentAddRecipe:
		return "add_recipe"
	case IntentEditRecipe:
		return "edit_recipe"
	case IntentDeleteRecipe:
		return "delete_recipe"
	case IntentHelp:
		return "help"
	case IntentQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Intent represents a parsed user action.
type Intent struct {
	Type    IntentType
	Payload string   // optional context, e.g. recipe id or fragment
	Args    []string // positional arguments for multi-part intents
}
