package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// AnalysisRequest is the core input contract. Quotes and news arrive already
// fetched; nothing here triggers I/O.
type AnalysisRequest struct {
	Positions                 []Position            `json:"positions" validate:"required,min=1,dive"`
	RiskTolerance             RiskTolerance         `json:"risk_tolerance" validate:"omitempty,known"`
	TimeHorizon               TimeHorizon           `json:"time_horizon" validate:"omitempty,known"`
	InvestmentGoals           []InvestmentGoal      `json:"investment_goals" validate:"dive,known"`
	NewsBySymbol              map[string][]NewsItem `json:"news_by_symbol"`
	HistoricalReturnsBySymbol map[string][]float64  `json:"historical_returns_by_symbol,omitempty"`
	Quotes                    map[string]float64    `json:"quotes,omitempty" validate:"dive,gte=0"`
	AsOf                      *time.Time            `json:"as_of,omitempty"`
}

var requestValidator = newRequestValidator()

func newRequestValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("known", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(interface{ Valid() bool })
		return ok && e.Valid()
	})
	return v
}

// Normalize returns a copy with upper-cased symbols, trimmed enums and the
// default tolerance and horizon applied. The receiver is not modified.
func (r AnalysisRequest) Normalize() AnalysisRequest {
	out := r
	out.Positions = make([]Position, len(r.Positions))
	for i, p := range r.Positions {
		p.Symbol = NormalizeSymbol(p.Symbol)
		out.Positions[i] = p
	}

	out.RiskTolerance = RiskTolerance(strings.ToLower(strings.TrimSpace(string(r.RiskTolerance))))
	if out.RiskTolerance == "" {
		out.RiskTolerance = DefaultRiskTolerance
	}
	out.TimeHorizon = TimeHorizon(strings.ToLower(strings.TrimSpace(string(r.TimeHorizon))))
	if out.TimeHorizon == "" {
		out.TimeHorizon = DefaultTimeHorizon
	}

	if r.InvestmentGoals != nil {
		out.InvestmentGoals = make([]InvestmentGoal, 0, len(r.InvestmentGoals))
		seen := make(map[InvestmentGoal]bool)
		for _, g := range r.InvestmentGoals {
			g = InvestmentGoal(strings.ToLower(strings.TrimSpace(string(g))))
			if seen[g] {
				continue
			}
			seen[g] = true
			out.InvestmentGoals = append(out.InvestmentGoals, g)
		}
	}

	if r.NewsBySymbol != nil {
		out.NewsBySymbol = make(map[string][]NewsItem, len(r.NewsBySymbol))
		for sym, items := range r.NewsBySymbol {
			key := NormalizeSymbol(sym)
			out.NewsBySymbol[key] = append(out.NewsBySymbol[key], items...)
		}
	}
	if r.HistoricalReturnsBySymbol != nil {
		out.HistoricalReturnsBySymbol = make(map[string][]float64, len(r.HistoricalReturnsBySymbol))
		for sym, series := range r.HistoricalReturnsBySymbol {
			out.HistoricalReturnsBySymbol[NormalizeSymbol(sym)] = series
		}
	}
	if r.Quotes != nil {
		out.Quotes = make(map[string]float64, len(r.Quotes))
		for sym, price := range r.Quotes {
			out.Quotes[NormalizeSymbol(sym)] = price
		}
	}
	return out
}

// Validate checks field constraints and returns the first failure as an
// *InputError. Call it on a normalized request.
func (r AnalysisRequest) Validate() error {
	return validateStruct(r)
}

func validateStruct(v any) error {
	err := requestValidator.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate %T: %w", v, err)
	}
	fe := verrs[0]
	return NewInputError(fieldPath(fe.Namespace()), reasonFor(fe))
}

// Portfolio returns the portfolio view of the request.
func (r AnalysisRequest) Portfolio() Portfolio {
	return Portfolio{
		Positions:       r.Positions,
		RiskTolerance:   r.RiskTolerance,
		TimeHorizon:     r.TimeHorizon,
		InvestmentGoals: r.InvestmentGoals,
	}
}

// Now returns the reference time for event ageing.
func (r AnalysisRequest) Now() time.Time {
	if r.AsOf != nil {
		return r.AsOf.UTC()
	}
	return time.Now().UTC()
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s long", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "known":
		return fmt.Sprintf("unsupported value %q", fmt.Sprint(fe.Value()))
	}
	return fmt.Sprintf("failed %s check", fe.Tag())
}
