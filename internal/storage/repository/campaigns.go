package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/magabrotheeeer/realty-platform/internal/lib/money"
	"github.com/magabrotheeeer/realty-platform/internal/models"
)

const campaignColumns = `id, user_uid, property_id, name, platform, campaign_type,
		      budget, daily_budget, target_audience, status, platform_campaign_id,
		      impressions, clicks, leads, cost_spent,
		      created_at, start_date, end_date`

func scanCampaign(row interface{ Scan(...any) error }) (*models.MarketingCampaign, error) {
	c := &models.MarketingCampaign{}
	var (
		propertyID         sql.NullInt64
		dailyBudget        sql.NullInt64
		platformCampaignID sql.NullString
		startDate, endDate sql.NullTime
		audience           []byte
	)
	if err := row.Scan(&c.ID, &c.UserUID, &propertyID, &c.Name, &c.Platform, &c.CampaignType,
		&c.Budget, &dailyBudget, &audience, &c.Status, &platformCampaignID,
		&c.Impressions, &c.Clicks, &c.Leads, &c.CostSpent,
		&c.CreatedAt, &startDate, &endDate); err != nil {
		return nil, err
	}
	if propertyID.Valid {
		c.PropertyID = &propertyID.Int64
	}
	if dailyBudget.Valid {
		c.DailyBudget = &dailyBudget.Int64
	}
	if platformCampaignID.Valid {
		c.PlatformCampaignID = &platformCampaignID.String
	}
	if startDate.Valid {
		c.StartDate = &startDate.Time
	}
	if endDate.Valid {
		c.EndDate = &endDate.Time
	}
	if len(audience) > 0 {
		if err := json.Unmarshal(audience, &c.TargetAudience); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// CreateCampaign сохраняет черновик кампании и возвращает его ID.
func (s *Storage) CreateCampaign(ctx context.Context, c models.MarketingCampaign) (int64, error) {
	const op = "storage.CreateCampaign"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	audience, err := json.Marshal(c.TargetAudience)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var id int64
	query := `INSERT INTO marketing_campaigns (user_uid, property_id, name, platform, campaign_type,
			      budget, daily_budget, target_audience)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		c.UserUID, c.PropertyID, c.Name, c.Platform, c.CampaignType,
		c.Budget, c.DailyBudget, audience).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetCampaign возвращает кампанию по ID.
func (s *Storage) GetCampaign(ctx context.Context, id int64) (*models.MarketingCampaign, error) {
	const op = "storage.GetCampaign"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + campaignColumns + ` FROM marketing_campaigns WHERE id = $1`
	c, err := scanCampaign(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, noRows(err)
	}
	return c, nil
}

// ListCampaigns возвращает страницу кампаний по фильтру вместе с общим
// количеством совпадений. Пустой UserUID в фильтре означает все
// кампании без ограничения по владельцу.
func (s *Storage) ListCampaigns(ctx context.Context, f models.CampaignFilter) ([]*models.MarketingCampaign, int, error) {
	const op = "storage.ListCampaigns"
	select {
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	where := []string{"TRUE"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if f.UserUID != "" {
		where = append(where, "user_uid = "+arg(f.UserUID))
	}
	if f.Platform != "" {
		where = append(where, "platform = "+arg(f.Platform))
	}
	if f.Status != "" {
		where = append(where, "status = "+arg(f.Status))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := s.DB.QueryRowContext(ctx,
		"SELECT count(*) FROM marketing_campaigns WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query := "SELECT " + campaignColumns + " FROM marketing_campaigns WHERE " + cond +
		" ORDER BY created_at DESC LIMIT " + arg(f.Limit) + " OFFSET " + arg(f.Offset)
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.MarketingCampaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, c)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, total, nil
}

// UpdateCampaign обновляет изменяемые поля кампании.
func (s *Storage) UpdateCampaign(ctx context.Context, c models.MarketingCampaign) (*models.MarketingCampaign, error) {
	const op = "storage.UpdateCampaign"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	audience, err := json.Marshal(c.TargetAudience)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE marketing_campaigns
			  SET name = $1, budget = $2, daily_budget = $3, target_audience = $4, status = $5
			  WHERE id = $6
			  RETURNING ` + campaignColumns
	updated, err := scanCampaign(s.DB.QueryRowContext(ctx, query,
		c.Name, c.Budget, c.DailyBudget, audience, c.Status, c.ID))
	if err != nil {
		return nil, noRows(err)
	}
	return updated, nil
}

// DeleteCampaign удаляет кампанию и возвращает количество удалённых строк.
func (s *Storage) DeleteCampaign(ctx context.Context, id int64) (int64, error) {
	const op = "storage.DeleteCampaign"

	res, err := s.DB.ExecContext(ctx, `DELETE FROM marketing_campaigns WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// LaunchCampaign переводит черновик в активный статус, присваивая внешний
// идентификатор и окно показа.
func (s *Storage) LaunchCampaign(ctx context.Context, id int64, platformCampaignID string, start time.Time, end *time.Time) (*models.MarketingCampaign, error) {
	const op = "storage.LaunchCampaign"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE marketing_campaigns
			  SET status = 'active', platform_campaign_id = $1, start_date = $2, end_date = $3
			  WHERE id = $4
			  RETURNING ` + campaignColumns
	c, err := scanCampaign(s.DB.QueryRowContext(ctx, query, platformCampaignID, start, end, id))
	if err != nil {
		return nil, noRows(err)
	}
	return c, nil
}

// UpdateCampaignStatus меняет только статус кампании.
func (s *Storage) UpdateCampaignStatus(ctx context.Context, id int64, status string) (*models.MarketingCampaign, error) {
	const op = "storage.UpdateCampaignStatus"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE marketing_campaigns
			  SET status = $1
			  WHERE id = $2
			  RETURNING ` + campaignColumns
	c, err := scanCampaign(s.DB.QueryRowContext(ctx, query, status, id))
	if err != nil {
		return nil, noRows(err)
	}
	return c, nil
}

// UpdateCampaignMetrics сохраняет пересчитанные показатели кампании.
func (s *Storage) UpdateCampaignMetrics(ctx context.Context, id int64, impressions, clicks, leads, costSpent int64) error {
	const op = "storage.UpdateCampaignMetrics"

	query := `UPDATE marketing_campaigns
			  SET impressions = $1, clicks = $2, leads = $3, cost_spent = $4
			  WHERE id = $5`
	if _, err := s.DB.ExecContext(ctx, query, impressions, clicks, leads, costSpent, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CampaignStats собирает сводку по всем кампаниям: счётчики по статусам,
// суммарные показатели и распределение по платформам.
func (s *Storage) CampaignStats(ctx context.Context) (*models.CampaignStats, error) {
	const op = "storage.CampaignStats"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	stats := &models.CampaignStats{ByPlatform: map[string]int{}}

	var totalSpent int64
	query := `SELECT count(*),
			      count(*) FILTER (WHERE status = 'active'),
			      COALESCE(sum(impressions), 0),
			      COALESCE(sum(clicks), 0),
			      COALESCE(sum(leads), 0),
			      COALESCE(sum(cost_spent), 0)
			  FROM marketing_campaigns`
	if err := s.DB.QueryRowContext(ctx, query).Scan(
		&stats.TotalCampaigns, &stats.ActiveCampaigns,
		&stats.TotalImpressions, &stats.TotalClicks, &stats.TotalLeads, &totalSpent); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	stats.TotalSpent = money.ToMajor(totalSpent)

	rows, err := s.DB.QueryContext(ctx,
		`SELECT platform, count(*) FROM marketing_campaigns GROUP BY platform`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var (
			platform string
			count    int
		)
		if err = rows.Scan(&platform, &count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		stats.ByPlatform[platform] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return stats, nil
}
