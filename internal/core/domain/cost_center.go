package domain

import (
	"strconv"
	"strings"
)

// DefaultMaxPathLength matches the original column width of the path field.
// The effective bound is configurable; see pkg/config.
const DefaultMaxPathLength = 128

// CostCenter is a node in the organizational spending hierarchy. Purchases
// and fundings are attributed to exactly one cost center; balance sheets
// aggregate a cost center together with all of its descendants.
//
// Path is the materialized ancestry chain, "/<rootID>/.../<ownID>". It is
// derived from the parent chain but persisted, so that subtree lookups are a
// single indexed prefix scan instead of a recursive parent walk.
//
// Invariant: Path == parent.Path + "/" + id for non-roots, "/" + id for
// roots. The cost-center service maintains this on every create, reparent
// and delete; nothing else may write Path.
type CostCenter struct {
	CostCenterID int64  `json:"costCenterID"` // Assigned by the store on first insert, immutable after
	Name         string `json:"name"`
	Description  string `json:"description"`
	ParentID     *int64 `json:"parentID"` // nil means root
	Path         string `json:"path"`
	AuditFields
}

// IsRoot reports whether the cost center has no parent.
func (c *CostCenter) IsRoot() bool {
	return c.ParentID == nil
}

// ChildPath computes the materialized path of a node with the given id under
// parentPath. An empty parentPath yields a root path.
func ChildPath(parentPath string, id int64) string {
	return parentPath + "/" + strconv.FormatInt(id, 10)
}

// PathWithinSubtree reports whether path belongs to the subtree rooted at
// the node owning subtreePath (that node included). The separator check is
// what keeps "/1/22" out of "/1/2"'s subtree.
func PathWithinSubtree(path, subtreePath string) bool {
	return path == subtreePath || strings.HasPrefix(path, subtreePath+"/")
}
