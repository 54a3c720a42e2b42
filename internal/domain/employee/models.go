package employee

// Ref is a denormalized reference (id + name) to a department, group or
// role. Selecting an option in the form replaces the whole Ref so the UI can
// render the name without a second lookup; the id stays authoritative for
// persistence.
type Ref struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Employment status values understood by the remote store.
const (
	StatusActive     = "active"
	StatusTerminated = "terminated"
	StatusSuspended  = "suspended"
)

type Employee struct {
	ID           int64   `json:"id"`
	Code         string  `json:"code"`
	Password     string  `json:"password,omitempty"`
	Username     string  `json:"username"`
	Email        string  `json:"email"`
	Gender       string  `json:"gender,omitempty"`
	Avatar       string  `json:"avatar,omitempty"`
	BirthDate    *string `json:"birthDate"`
	DepartmentID *int64  `json:"departmentId"`
	GroupID      *int64  `json:"groupId,omitempty"`
	Education    *string `json:"education,omitempty"`
	Expertise    *string `json:"expertise,omitempty"`
	RoleID       int64   `json:"roleId,omitempty"`
	IsActive     *bool   `json:"isActive,omitempty"`

	Department Ref   `json:"Department"`
	MemberOf   []Ref `json:"MemberOf,omitempty"`
	Role       *Ref  `json:"Role,omitempty"`

	EmploymentInformation *EmploymentInformation `json:"EmploymentInformation,omitempty"`
	FinancialInformation  *FinancialInformation  `json:"FinancialInformation,omitempty"`
	PrivateInformation    *PrivateInformation    `json:"PrivateInformation,omitempty"`
}

// Group returns the displayed group membership. The store models an array
// but the UI only ever uses index 0.
func (e Employee) Group() Ref {
	if len(e.MemberOf) == 0 {
		return Ref{}
	}
	return e.MemberOf[0]
}

type EmploymentInformation struct {
	ID               int64   `json:"id"`
	UserID           int64   `json:"userId"`
	StartDate        *string `json:"startDate"`
	Referrer         *string `json:"referrer"`
	ContractSignDate *string `json:"contractSignDate"`
	ApplicationDate  *string `json:"applicationDate"`
	DecisionSignDate *string `json:"decisionSignDate"`
	DecisionNumber   *string `json:"decisionNumber"`
	EmploymentStatus *string `json:"employmentStatus"`
}

type FinancialInformation struct {
	ID                int64    `json:"id"`
	UserID            int64    `json:"userId"`
	BasicSalary       *float64 `json:"basicSalary"`
	Allowance         *float64 `json:"allowance"`
	BankAccountNumber *string  `json:"bankAccountNumber"`
	BankBranch        *string  `json:"bankBranch"`
	BankName          *string  `json:"bankName"`
}

type PrivateInformation struct {
	ID                    int64   `json:"id"`
	UserID                int64   `json:"userId"`
	IDCard1               *string `json:"idCard1"`
	IDCard1IssueDate      *string `json:"idCard1IssueDate"`
	IDCard1IssuePlace     *string `json:"idCard1IssuePlace"`
	IDCard2               *string `json:"idCard2"`
	IDCard2IssueDate      *string `json:"idCard2IssueDate"`
	IDCard2IssuePlace     *string `json:"idCard2IssuePlace"`
	Address               *string `json:"address"`
	BankAccountNumber     *string `json:"bankAccountNumber"`
	BankBranch            *string `json:"bankBranch"`
	BankName              *string `json:"bankName"`
	SocialInsuranceNumber *string `json:"socialInsuranceNumber"`
	PhoneNumber           *string `json:"phoneNumber"`
	TaxNumber             *string `json:"taxNumber"`
}

// NewInitial is the creation template: every nested record present with null
// leaf fields, so the first save writes complete section rows.
func NewInitial() Employee {
	active := true
	return Employee{
		IsActive:              &active,
		Department:            Ref{},
		MemberOf:              []Ref{{}},
		Role:                  &Ref{Name: "user"},
		EmploymentInformation: &EmploymentInformation{},
		FinancialInformation:  &FinancialInformation{},
		PrivateInformation:    &PrivateInformation{},
	}
}
