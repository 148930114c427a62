package component

import "polaris/components/internal/domain"

// PageActions is the footer action bar of a page.
type PageActions struct {
	PrimaryAction    *domain.Action
	SecondaryActions []domain.Action
}

func (p PageActions) ShowSecondaryActions() bool {
	return p.SecondaryActions != nil
}

func (p PageActions) Activate(key string) (*domain.ActionEvent, error) {
	return activate("page-actions", "", key, p.PrimaryAction, p.SecondaryActions)
}

type pageActionsView struct {
	Primary       *buttonView
	ShowSecondary bool
	Secondary     []buttonView
}
