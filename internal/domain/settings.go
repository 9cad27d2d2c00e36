package domain

// ResponseTemplate is a reusable reply text.
type ResponseTemplate struct {
	Name string
	Text string
}

// AutomationRule describes an automatic action on incoming reviews.
type AutomationRule struct {
	Name        string
	Description string
	Enabled     bool
}

// Plan is a subscription tier.
type Plan string

const (
	PlanFree         Plan = "Free"
	PlanStarter      Plan = "Starter"
	PlanProfessional Plan = "Professional"
	PlanBusiness     Plan = "Business"
)

func (p Plan) String() string { return string(p) }

func (p Plan) IsValid() bool {
	switch p {
	case PlanFree, PlanStarter, PlanProfessional, PlanBusiness:
		return true
	}
	return false
}
