package employee

import "encoding/json"

// The detail page is saved from two cooperating form regions that each hold
// their own draft. Field ownership is disjoint: the basic region owns
// identity and classification keys, the tabbed region owns the personal
// scalars and the three nested records. Merge still resolves any collision
// deterministically with right-most wins, so the combined payload is
// original, then basic draft, then tab draft, in that fixed order.

// BasicRegionKeys are the top-level record keys the basic form region may
// produce in its draft.
var BasicRegionKeys = []string{
	"code", "username", "email", "password", "expertise",
	"roleId", "Role", "departmentId", "Department", "groupId", "MemberOf",
}

// TabRegionKeys are the top-level record keys the tabbed form region may
// produce in its draft.
var TabRegionKeys = []string{
	"gender", "birthDate", "education",
	"PrivateInformation", "EmploymentInformation", "FinancialInformation",
}

// Merge combines draft layers over the original record. Layers are shallow:
// a key present in a later layer replaces the earlier value wholesale,
// including nested section objects.
func Merge(layers ...map[string]any) map[string]any {
	merged := map[string]any{}
	for _, layer := range layers {
		for key, value := range layer {
			merged[key] = value
		}
	}
	return merged
}

// ToMap converts a record to its JSON field map, the shape Merge operates on.
func ToMap(e Employee) (map[string]any, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// FromMap is the inverse of ToMap for rendering a merged payload back into a
// typed record.
func FromMap(fields map[string]any) (Employee, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return Employee{}, err
	}
	var e Employee
	if err := json.Unmarshal(raw, &e); err != nil {
		return Employee{}, err
	}
	return e, nil
}
