package store

import "github.com/atinyakov/AccountKeeper/internal/models"

// maskedPassword is what the demo rows show instead of a real password.
const maskedPassword = "●●●●●●"

// DemoAccounts returns the demonstration rows installed by WithDemoSeed.
func DemoAccounts() []models.Account {
	local := func(id int64, labels string) models.Account {
		return models.Account{
			ID:         id,
			Labels:     labels,
			LabelItems: DeriveLabelItems(labels),
			Type:       models.Local,
			Login:      "Value",
			Password:   models.String(maskedPassword),
		}
	}
	ldap := func(id int64) models.Account {
		return models.Account{
			ID:         id,
			Labels:     "Value",
			LabelItems: DeriveLabelItems("Value"),
			Type:       models.LDAP,
			Login:      "Value",
		}
	}

	return []models.Account{
		local(1, "XXX"),
		local(2, "XXX; YYYYYYYYYY; IIIIIIII; MMMMMMMM"),
		local(3, "XXX"),
		ldap(4),
		ldap(5),
	}
}
