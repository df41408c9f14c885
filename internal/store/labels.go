package store

import (
	"strings"

	"github.com/atinyakov/AccountKeeper/internal/models"
)

// LabelSeparator separates individual labels in Account.Labels.
const LabelSeparator = ";"

// DeriveLabelItems splits labels on LabelSeparator, trims every piece and
// drops the empty ones. The result is never nil.
func DeriveLabelItems(labels string) []models.LabelItem {
	items := make([]models.LabelItem, 0)
	for _, part := range strings.Split(labels, LabelSeparator) {
		if text := strings.TrimSpace(part); text != "" {
			items = append(items, models.LabelItem{Text: text})
		}
	}
	return items
}
