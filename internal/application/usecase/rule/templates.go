package rule

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerflow/backend/internal/application/adapter"
	"github.com/ledgerflow/backend/internal/domain/entity"
	domainerror "github.com/ledgerflow/backend/internal/domain/error"
)

// RuleTemplate is a built-in rule blueprint users can instantiate against one
// of their own categories.
type RuleTemplate struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Scope       entity.RuleScope   `json:"scope"`
	Conditions  []entity.Condition `json:"conditions"`
	StopOnMatch bool               `json:"stopOnMatch"`
}

// ruleTemplates is the built-in template catalog. Templates carry only a
// set_category action, bound at instantiation time.
var ruleTemplates = []RuleTemplate{
	{
		ID:          "streaming-subscriptions",
		Name:        "Streaming subscriptions",
		Description: "Categorize charges from common streaming services",
		Scope:       entity.RuleScopeExpense,
		Conditions: []entity.Condition{
			{Field: entity.ConditionFieldDescription, Operator: entity.OperatorRegex, Value: `netflix|spotify|disney\+|hbo|prime video|youtube premium`},
		},
		StopOnMatch: true,
	},
	{
		ID:          "groceries",
		Name:        "Groceries",
		Description: "Categorize supermarket and grocery store purchases",
		Scope:       entity.RuleScopeExpense,
		Conditions: []entity.Condition{
			{Field: entity.ConditionFieldDescription, Operator: entity.OperatorRegex, Value: `supermarket|grocery|market|mercado`},
		},
		StopOnMatch: true,
	},
	{
		ID:          "ride-hailing",
		Name:        "Ride hailing",
		Description: "Categorize Uber, Lyft and taxi rides",
		Scope:       entity.RuleScopeExpense,
		Conditions: []entity.Condition{
			{Field: entity.ConditionFieldDescription, Operator: entity.OperatorRegex, Value: `uber|lyft|99|cabify|taxi`},
		},
		StopOnMatch: true,
	},
	{
		ID:          "salary",
		Name:        "Salary",
		Description: "Categorize incoming salary payments",
		Scope:       entity.RuleScopeIncome,
		Conditions: []entity.Condition{
			{Field: entity.ConditionFieldDescription, Operator: entity.OperatorContains, Value: "salary"},
		},
		StopOnMatch: true,
	},
	{
		ID:          "large-purchases",
		Name:        "Large purchases",
		Description: "Flag expenses above a threshold for review",
		Scope:       entity.RuleScopeExpense,
		Conditions: []entity.Condition{
			{Field: entity.ConditionFieldAmount, Operator: entity.OperatorGreaterThanOrEqual, Value: "500"},
		},
		StopOnMatch: false,
	},
}

// ListTemplates returns the built-in rule template catalog.
func ListTemplates() []RuleTemplate {
	out := make([]RuleTemplate, len(ruleTemplates))
	copy(out, ruleTemplates)
	return out
}

// InstantiateTemplateInput represents the input for creating a rule from a
// built-in template.
type InstantiateTemplateInput struct {
	UserID     uuid.UUID
	TemplateID string
	CategoryID uuid.UUID
}

// InstantiateTemplateOutput represents the output of instantiating a template.
type InstantiateTemplateOutput struct {
	Rule *entity.Rule
}

// InstantiateTemplateUseCase creates a concrete rule from a built-in template,
// binding the template's set_category action to a category the user owns.
type InstantiateTemplateUseCase struct {
	ruleRepo     adapter.RuleRepository
	categoryRepo adapter.CategoryRepository
}

// NewInstantiateTemplateUseCase creates a new InstantiateTemplateUseCase instance.
func NewInstantiateTemplateUseCase(ruleRepo adapter.RuleRepository, categoryRepo adapter.CategoryRepository) *InstantiateTemplateUseCase {
	return &InstantiateTemplateUseCase{
		ruleRepo:     ruleRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute instantiates the template as a new rule for the user.
func (uc *InstantiateTemplateUseCase) Execute(ctx context.Context, input InstantiateTemplateInput) (*InstantiateTemplateOutput, error) {
	var template *RuleTemplate
	for i := range ruleTemplates {
		if ruleTemplates[i].ID == input.TemplateID {
			template = &ruleTemplates[i]
			break
		}
	}
	if template == nil {
		return nil, domainerror.NewRuleError(
			domainerror.ErrCodeRuleTemplateNotFound,
			fmt.Sprintf("rule template %q not found", input.TemplateID),
			domainerror.ErrRuleTemplateNotFound,
		)
	}

	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		return nil, domainerror.NewRuleError(
			domainerror.ErrCodeInvalidAction,
			"template category not found",
			domainerror.ErrInvalidAction,
		)
	}
	if category.UserID != input.UserID {
		return nil, domainerror.NewRuleError(
			domainerror.ErrCodeInvalidAction,
			"template category does not belong to you",
			domainerror.ErrInvalidAction,
		)
	}

	maxPriority, err := uc.ruleRepo.GetMaxPriorityByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to determine rule priority: %w", err)
	}

	categoryID := input.CategoryID
	actions := []entity.Action{{Type: entity.ActionSetCategory, CategoryID: &categoryID}}
	r := entity.NewRule(input.UserID, template.Name, template.Conditions, actions,
		maxPriority+1, template.Scope, template.StopOnMatch)

	if err := uc.ruleRepo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to create rule from template: %w", err)
	}
	return &InstantiateTemplateOutput{Rule: r}, nil
}
