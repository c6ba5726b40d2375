package dto

import (
	"github.com/kpi-tracker/backend/internal/application/usecase/performance"
	"github.com/kpi-tracker/backend/internal/domain/entity"
	"github.com/kpi-tracker/backend/internal/domain/valueobject"
)

// EmployeeResponse represents an employee in API responses.
type EmployeeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GroupResponse represents a group of the catalog.
type GroupResponse struct {
	Key        string             `json:"key"`
	Title      string             `json:"title"`
	Profile    string             `json:"profile"`
	Categories []string           `json:"categories"`
	Employees  []EmployeeResponse `json:"employees"`
}

// SectionResponse represents one section of the catalog.
type SectionResponse struct {
	Name                string          `json:"name"`
	Categories          []string        `json:"categories"`
	CompositeCategories []string        `json:"composite_categories"`
	Groups              []GroupResponse `json:"groups"`
}

// SectionListResponse represents the catalog listing.
type SectionListResponse struct {
	Sections   []SectionResponse `json:"sections"`
	MonthNames []string          `json:"month_names"`
}

// BandsResponse describes the status band breakpoints in use.
type BandsResponse struct {
	Name     string  `json:"name"`
	OnTarget float64 `json:"on_target"`
	Near     float64 `json:"near"`
}

// EvolutionPointResponse is one month of the evolution chart. A null value
// means the month has no data.
type EvolutionPointResponse struct {
	Month     int             `json:"month"`
	MonthName string          `json:"month_name"`
	Values    map[string]*int `json:"values"`
}

// EvolutionResponse represents the evolution chart of a group.
type EvolutionResponse struct {
	Section      string                   `json:"section"`
	Group        string                   `json:"group"`
	ActiveMonths []int                    `json:"active_months"`
	Categories   []string                 `json:"categories"`
	Points       []EvolutionPointResponse `json:"points"`
}

// PillarResponse is one scored dimension of a leaderboard entry.
type PillarResponse struct {
	Key         string  `json:"key"`
	Category    string  `json:"category"`
	Actual      float64 `json:"actual"`
	Target      float64 `json:"target"`
	Achievement int     `json:"achievement"`
	Status      string  `json:"status"`
}

// LeaderboardEntryResponse is one ranked employee.
type LeaderboardEntryResponse struct {
	Rank       int              `json:"rank"`
	EmployeeID string           `json:"employee_id"`
	Name       string           `json:"name"`
	Overall    int              `json:"overall"`
	Status     string           `json:"status"`
	Pillars    []PillarResponse `json:"pillars"`
}

// LeaderboardResponse represents a group leaderboard.
type LeaderboardResponse struct {
	Section      string                     `json:"section"`
	Group        string                     `json:"group"`
	Title        string                     `json:"title"`
	ActiveMonths []int                      `json:"active_months"`
	GroupScore   int                        `json:"group_score"`
	GroupStatus  string                     `json:"group_status"`
	Bands        BandsResponse              `json:"bands"`
	Entries      []LeaderboardEntryResponse `json:"entries"`
}

// GroupPerformanceResponse is one group of the section performance.
type GroupPerformanceResponse struct {
	Group   string                     `json:"group"`
	Title   string                     `json:"title"`
	Score   int                        `json:"score"`
	Status  string                     `json:"status"`
	Entries []LeaderboardEntryResponse `json:"entries"`
}

// SectionPerformanceResponse represents the global performance of a section.
type SectionPerformanceResponse struct {
	Section      string                     `json:"section"`
	GlobalScore  int                        `json:"global_score"`
	GlobalStatus string                     `json:"global_status"`
	Bands        BandsResponse              `json:"bands"`
	Groups       []GroupPerformanceResponse `json:"groups"`
}

// GridCellResponse is one month of a grid row.
type GridCellResponse struct {
	Month       int     `json:"month"`
	Actual      float64 `json:"actual"`
	Target      float64 `json:"target"`
	Achievement int     `json:"achievement"`
	Status      string  `json:"status"`
	Locked      bool    `json:"locked"`
}

// GridRowResponse is one employee of the category grid.
type GridRowResponse struct {
	EmployeeID        string             `json:"employee_id"`
	Name              string             `json:"name"`
	Cells             []GridCellResponse `json:"cells"`
	AnnualActual      float64            `json:"annual_actual"`
	AnnualTarget      float64            `json:"annual_target"`
	AnnualAchievement int                `json:"annual_achievement"`
	AnnualStatus      string             `json:"annual_status"`
}

// CategoryGridResponse represents the monthly grid of one category.
type CategoryGridResponse struct {
	Section  string            `json:"section"`
	Group    string            `json:"group"`
	Category string            `json:"category"`
	Kind     string            `json:"kind"`
	Rows     []GridRowResponse `json:"rows"`
}

// CategorySummaryResponse represents the annual KPI of a category.
type CategorySummaryResponse struct {
	Section     string  `json:"section"`
	Category    string  `json:"category"`
	Employees   int     `json:"employees"`
	Target      float64 `json:"target"`
	Actual      float64 `json:"actual"`
	Missing     float64 `json:"missing"`
	Achievement int     `json:"achievement"`
}

// TargetResponse represents a resolved target.
type TargetResponse struct {
	Category   string  `json:"category"`
	Month      int     `json:"month"`
	Section    string  `json:"section"`
	EmployeeID string  `json:"employee_id"`
	Kind       string  `json:"kind"`
	Target     float64 `json:"target"`
}

// ToSectionListResponse converts the catalog listing.
func ToSectionListResponse(output *performance.ListSectionsOutput) SectionListResponse {
	response := SectionListResponse{
		Sections:   make([]SectionResponse, 0, len(output.Sections)),
		MonthNames: output.MonthNames,
	}
	for _, view := range output.Sections {
		section := SectionResponse{
			Name:                string(view.Section),
			Categories:          nonNil(view.Categories),
			CompositeCategories: nonNil(view.Composite),
			Groups:              make([]GroupResponse, 0, len(view.Groups)),
		}
		for _, g := range view.Groups {
			section.Groups = append(section.Groups, ToGroupResponse(g))
		}
		response.Sections = append(response.Sections, section)
	}
	return response
}

// ToGroupResponse converts a catalog group.
func ToGroupResponse(g *entity.Group) GroupResponse {
	employees := make([]EmployeeResponse, len(g.Employees))
	for i, e := range g.Employees {
		employees[i] = EmployeeResponse{ID: e.ID, Name: e.Name}
	}
	return GroupResponse{
		Key:        g.Key,
		Title:      g.Title,
		Profile:    string(g.Profile),
		Categories: nonNil(g.Categories),
		Employees:  employees,
	}
}

// ToBandsResponse converts status bands.
func ToBandsResponse(bands valueobject.StatusBands) BandsResponse {
	return BandsResponse{Name: bands.Name, OnTarget: bands.OnTarget, Near: bands.Near}
}

// ToEvolutionResponse converts an evolution series.
func ToEvolutionResponse(output *performance.GetEvolutionOutput) EvolutionResponse {
	response := EvolutionResponse{
		Section:      string(output.Group.Section),
		Group:        output.Group.Key,
		ActiveMonths: nonNilInts(output.ActiveMonths),
		Categories:   nonNil(output.Series.Categories),
		Points:       make([]EvolutionPointResponse, len(output.Series.Points)),
	}
	for i, p := range output.Series.Points {
		response.Points[i] = EvolutionPointResponse{
			Month:     p.Month,
			MonthName: entity.MonthNames[p.Month],
			Values:    p.Values,
		}
	}
	return response
}

// ToLeaderboardEntries ranks entries in the order given.
func ToLeaderboardEntries(entries []performance.LeaderboardEntry, bands valueobject.StatusBands) []LeaderboardEntryResponse {
	response := make([]LeaderboardEntryResponse, len(entries))
	for i, e := range entries {
		pillars := make([]PillarResponse, len(e.Pillars))
		for j, p := range e.Pillars {
			pillars[j] = PillarResponse{
				Key:         p.Key,
				Category:    p.Category,
				Actual:      p.Actual,
				Target:      p.Target,
				Achievement: valueobject.RoundPercent(p.Achievement),
				Status:      string(bands.Classify(p.Achievement)),
			}
		}
		response[i] = LeaderboardEntryResponse{
			Rank:       i + 1,
			EmployeeID: e.Employee.ID,
			Name:       e.Employee.Name,
			Overall:    valueobject.RoundPercent(e.Overall),
			Status:     string(bands.Classify(e.Overall)),
			Pillars:    pillars,
		}
	}
	return response
}

// ToLeaderboardResponse converts a group leaderboard.
func ToLeaderboardResponse(output *performance.GetLeaderboardOutput) LeaderboardResponse {
	return LeaderboardResponse{
		Section:      string(output.Group.Section),
		Group:        output.Group.Key,
		Title:        output.Group.Title,
		ActiveMonths: nonNilInts(output.ActiveMonths),
		GroupScore:   valueobject.RoundPercent(output.GroupScore),
		GroupStatus:  string(output.Bands.Classify(output.GroupScore)),
		Bands:        ToBandsResponse(output.Bands),
		Entries:      ToLeaderboardEntries(output.Entries, output.Bands),
	}
}

// ToSectionPerformanceResponse converts the section performance.
func ToSectionPerformanceResponse(output *performance.GetSectionPerformanceOutput) SectionPerformanceResponse {
	response := SectionPerformanceResponse{
		Section:      string(output.Section),
		GlobalScore:  valueobject.RoundPercent(output.GlobalScore),
		GlobalStatus: string(output.Bands.Classify(output.GlobalScore)),
		Bands:        ToBandsResponse(output.Bands),
		Groups:       make([]GroupPerformanceResponse, len(output.Groups)),
	}
	for i, g := range output.Groups {
		response.Groups[i] = GroupPerformanceResponse{
			Group:   g.Group.Key,
			Title:   g.Group.Title,
			Score:   valueobject.RoundPercent(g.Score),
			Status:  string(output.Bands.Classify(g.Score)),
			Entries: ToLeaderboardEntries(g.Entries, output.Bands),
		}
	}
	return response
}

// ToCategoryGridResponse converts a category grid.
func ToCategoryGridResponse(output *performance.GetCategoryGridOutput) CategoryGridResponse {
	response := CategoryGridResponse{
		Section:  string(output.Group.Section),
		Group:    output.Group.Key,
		Category: output.Category,
		Kind:     string(output.Kind),
		Rows:     make([]GridRowResponse, len(output.Rows)),
	}
	for i, row := range output.Rows {
		cells := make([]GridCellResponse, len(row.Cells))
		for j, c := range row.Cells {
			cells[j] = GridCellResponse{
				Month:       c.Month,
				Actual:      c.Actual,
				Target:      c.Target,
				Achievement: valueobject.RoundPercent(c.Achievement),
				Status:      string(output.Bands.Classify(c.Achievement)),
				Locked:      c.Locked,
			}
		}
		response.Rows[i] = GridRowResponse{
			EmployeeID:        row.Employee.ID,
			Name:              row.Employee.Name,
			Cells:             cells,
			AnnualActual:      row.AnnualActual,
			AnnualTarget:      row.AnnualTarget,
			AnnualAchievement: valueobject.RoundPercent(row.AnnualAchievement),
			AnnualStatus:      string(output.Bands.Classify(row.AnnualAchievement)),
		}
	}
	return response
}

// ToCategorySummaryResponse converts an annual category summary.
func ToCategorySummaryResponse(output *performance.GetCategorySummaryOutput) CategorySummaryResponse {
	s := output.Summary
	return CategorySummaryResponse{
		Section:     string(output.Section),
		Category:    s.Category,
		Employees:   s.Employees,
		Target:      s.Target,
		Actual:      s.Actual,
		Missing:     s.Missing,
		Achievement: valueobject.RoundPercent(s.Achievement),
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func nonNilInts(values []int) []int {
	if values == nil {
		return []int{}
	}
	return values
}
