// Package access maps an authenticated role to the bases and operations it
// may touch. Decisions are pure functions of (scope, operation, base); no
// stock logic lives here.
package access

import (
	"github.com/jcastell/milasset-api/internal/domain/entity"
)

// Op is a write operation subject to role scoping.
type Op string

const (
	OpRecordPurchase    Op = "record_purchase"
	OpRecordTransfer    Op = "record_transfer"
	OpRecordAssignment  Op = "record_assignment"
	OpRecordExpenditure Op = "record_expenditure"
)

// Scope is the credential resolved from a bearer token: a closed role variant
// plus the commander's base. BaseID is zero unless Role is base_commander.
type Scope struct {
	UserID string
	Role   string
	BaseID int64
}

// ValidRole reports whether r is one of the three known roles.
func ValidRole(r string) bool {
	switch r {
	case entity.RoleAdmin, entity.RoleBaseCommander, entity.RoleLogisticsOfficer:
		return true
	}
	return false
}

// CanRead reports whether the scope may read data for baseID.
// Admins and logistics officers read any base; a commander only their own.
func (s Scope) CanRead(baseID int64) bool {
	switch s.Role {
	case entity.RoleAdmin, entity.RoleLogisticsOfficer:
		return true
	case entity.RoleBaseCommander:
		return baseID == s.BaseID
	}
	return false
}

// CanWrite reports whether the scope may perform op against baseID.
// For transfers baseID is the source base; the destination is unrestricted
// for the roles that may transfer at all.
func (s Scope) CanWrite(op Op, baseID int64) bool {
	switch s.Role {
	case entity.RoleAdmin:
		return true
	case entity.RoleLogisticsOfficer:
		return op == OpRecordPurchase || op == OpRecordTransfer
	case entity.RoleBaseCommander:
		if op != OpRecordAssignment && op != OpRecordExpenditure {
			return false
		}
		return baseID == s.BaseID
	}
	return false
}

// NarrowBase resolves the base filter for list/read requests.
// A zero requested base means "no filter": commanders are narrowed to their
// own base, other roles keep the unrestricted view.
func (s Scope) NarrowBase(requested int64) int64 {
	if requested == 0 && s.Role == entity.RoleBaseCommander {
		return s.BaseID
	}
	return requested
}
