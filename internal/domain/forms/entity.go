package forms

import "time"

// Project is the remodel category a lead is interested in.
type Project string

const (
	ProjectKitchen     Project = "Kitchen"
	ProjectBathroom    Project = "Bathroom"
	ProjectKitchenBath Project = "Kitchen & Bath"
	ProjectOther       Project = "Other"
)

func (p Project) Valid() bool {
	switch p {
	case ProjectKitchen, ProjectBathroom, ProjectKitchenBath, ProjectOther:
		return true
	}
	return false
}

// Budget is one of the fixed budget brackets offered by the form.
type Budget string

const (
	BudgetUnder25k Budget = "Under $25k"
	Budget25to50k  Budget = "$25k - $50k"
	Budget50to100k Budget = "$50k - $100k"
	BudgetOver100k Budget = "$100k+"
)

func (b Budget) Valid() bool {
	switch b {
	case BudgetUnder25k, Budget25to50k, Budget50to100k, BudgetOver100k:
		return true
	}
	return false
}

// Financing answers whether the lead needs financing.
type Financing string

const (
	FinancingYes Financing = "Yes"
	FinancingNo  Financing = "No"
)

func (f Financing) Valid() bool {
	return f == FinancingYes || f == FinancingNo
}

// Projects, Budgets and FinancingOptions list the choices in display order.
var (
	Projects         = []Project{ProjectKitchen, ProjectBathroom, ProjectKitchenBath, ProjectOther}
	Budgets          = []Budget{BudgetUnder25k, Budget25to50k, Budget50to100k, BudgetOver100k}
	FinancingOptions = []Financing{FinancingYes, FinancingNo}
)

// Lead is one submission as stored by the forms service.
type Lead struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Project   string
	Budget    string
	Financing string
	Source    string
	AdSource  string
	Notes     string
	CreatedAt time.Time
}

// Details are the step two answers.
type Details struct {
	Project   Project
	Budget    Budget
	Financing Financing
}
