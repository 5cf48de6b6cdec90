package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/realty-platform/internal/models"
)

const planColumns = `id, name, display_name, description, price_monthly, price_yearly, currency,
		      max_properties, social_media_promotion, priority_support, analytics_access,
		      featured_listings, google_ads_integration, facebook_ads_integration, lead_management,
		      is_active, sort_order, created_at, updated_at`

func scanPlan(row interface{ Scan(...any) error }) (*models.SubscriptionPlan, error) {
	p := &models.SubscriptionPlan{}
	var priceYearly sql.NullInt64
	if err := row.Scan(&p.ID, &p.Name, &p.DisplayName, &p.Description,
		&p.PriceMonthly, &priceYearly, &p.Currency,
		&p.MaxProperties, &p.SocialMediaPromotion, &p.PrioritySupport, &p.AnalyticsAccess,
		&p.FeaturedListings, &p.GoogleAdsIntegration, &p.FacebookAdsIntegration, &p.LeadManagement,
		&p.IsActive, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if priceYearly.Valid {
		p.PriceYearly = &priceYearly.Int64
	}
	return p, nil
}

// ListPlans возвращает активные тарифы в порядке sort_order.
func (s *Storage) ListPlans(ctx context.Context) ([]*models.SubscriptionPlan, error) {
	const op = "storage.ListPlans"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + planColumns + `
			  FROM subscription_plans
			  WHERE is_active = TRUE
			  ORDER BY sort_order`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.SubscriptionPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetPlanByName возвращает активный тариф по имени (free, basic, premium).
func (s *Storage) GetPlanByName(ctx context.Context, name string) (*models.SubscriptionPlan, error) {
	const op = "storage.GetPlanByName"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + planColumns + `
			  FROM subscription_plans
			  WHERE name = $1 AND is_active = TRUE`
	p, err := scanPlan(s.DB.QueryRowContext(ctx, query, name))
	if err != nil {
		return nil, noRows(err)
	}
	return p, nil
}
