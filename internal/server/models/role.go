package models

// Role is a named category of users granting a fixed set of actions.
type Role struct {
	ID   int64
	Name string
}

// Action is a guarded operation identified by an integer id.
type Action struct {
	ID   int64
	Name string
}

// Reference role ids, matching the seeded roles table.
const (
	RoleBorrower int64 = 1
	RoleLender   int64 = 2
	RoleAdmin    int64 = 3
)

// Reference action ids, matching the seeded actions table.
const (
	ActionPlaceBid    int64 = 1
	ActionPlaceOffer  int64 = 2
	ActionCancelBid   int64 = 3
	ActionRequestLoan int64 = 4
	ActionFundLoan    int64 = 5
	ActionRepayLoan   int64 = 6
	ActionViewReports int64 = 7
)
