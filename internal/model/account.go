package model

// Account represents an investment account tracked by snapshots.
type Account struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Kind       string `json:"kind"` // free-form label: brokerage, pension, crypto, ...
	IsArchived bool   `json:"isArchived"`
}

// AccountFilter for querying accounts
type AccountFilter struct {
	IncludeArchived bool
}

// ScopeKind discriminates the two account scopes a return query can target.
type ScopeKind int

const (
	// ScopeAccount targets a single account by ID.
	ScopeAccount ScopeKind = iota
	// ScopePortfolio targets the combined total of all active accounts.
	ScopePortfolio
)

// AccountScope identifies what a return or curve query is computed over:
// either one account or the whole portfolio. It replaces the sentinel
// "all accounts" pseudo-ID with an explicit tagged value.
type AccountScope struct {
	Kind      ScopeKind
	AccountID string // set only when Kind == ScopeAccount
}

// PortfolioScope returns the scope covering all active accounts combined.
func PortfolioScope() AccountScope {
	return AccountScope{Kind: ScopePortfolio}
}

// SingleAccountScope returns the scope covering one account.
func SingleAccountScope(accountID string) AccountScope {
	return AccountScope{Kind: ScopeAccount, AccountID: accountID}
}

// IsPortfolio reports whether the scope covers the whole portfolio.
func (s AccountScope) IsPortfolio() bool {
	return s.Kind == ScopePortfolio
}
