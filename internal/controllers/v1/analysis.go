package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/budgetradar/backend/internal/analysis"
	"github.com/budgetradar/backend/internal/httputil"
	"github.com/budgetradar/backend/internal/models"
	"github.com/budgetradar/backend/internal/report"
	br_uuid "github.com/budgetradar/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AnalysisReport is the full analysis of a dataset.
type AnalysisReport struct {
	Summary       analysis.Summary           `json:"summary"`                   // Summary statistics for the whole dataset
	Departments   []analysis.DepartmentStats `json:"departments"`               // Breakdown by department, ordered by total descending
	Categories    []analysis.CategoryStats   `json:"categories"`                // Breakdown by category, ordered by total descending
	TopExpenses   []LineItem                 `json:"topExpenses"`               // The five largest line items
	HighCostItems []LineItem                 `json:"highCostItems"`             // Line items exceeding 10% of the total budget
	HHI           float64                    `json:"hhi" example:"2843.75"`     // Herfindahl-Hirschman concentration index over departments
	Gini          float64                    `json:"gini" example:"0.42"`       // Gini coefficient of the department distribution
	HealthScore   int                        `json:"healthScore" example:"74"`  // Overall budget health score from 0 to 100
	Insights      []string                   `json:"insights"`                  // Human readable findings
}

type AnalysisResponse struct {
	Data  *AnalysisReport `json:"data"`                                                          // The analysis report
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type RiskResponse struct {
	Data  *analysis.RiskAssessment `json:"data"`                                                          // The risk assessment
	Error *string                  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// RecommendationReport contains the prioritized recommendations for a dataset.
type RecommendationReport struct {
	HealthScore     int                       `json:"healthScore" example:"74"` // Overall budget health score from 0 to 100
	Recommendations []analysis.Recommendation `json:"recommendations"`          // Recommendations ordered by priority, then impact
}

type RecommendationResponse struct {
	Data  *RecommendationReport `json:"data"`                                                          // The recommendation report
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// OptimizationReport contains the cost saving opportunities for a dataset.
type OptimizationReport struct {
	Optimizations         []analysis.Optimization `json:"optimizations"`                          // Cost saving opportunities, at most ten
	TotalPotentialSavings decimal.Decimal         `json:"totalPotentialSavings" example:"5230.5"` // Sum of the potential savings
}

type OptimizationResponse struct {
	Data  *OptimizationReport `json:"data"`                                                          // The optimization report
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ChartResponse struct {
	Data  *analysis.ChartData `json:"data"`                                                          // Data for a department breakdown chart
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ComparisonQuery struct {
	Other br_uuid.UUID `form:"other" binding:"required"` // ID of the dataset to compare against
}

type ComparisonResponse struct {
	Data  *analysis.Comparison `json:"data"`                                                          // The comparison of the two datasets
	Error *string              `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// loadItems loads the dataset referenced in the URI and all its line items.
func loadItems(c *gin.Context) (models.Dataset, []models.LineItem, error) {
	dataset, err := getDataset(c)
	if err != nil {
		return models.Dataset{}, nil, err
	}

	items, err := models.ItemsFor(models.DB, dataset.ID)
	if err != nil {
		return models.Dataset{}, nil, err
	}

	return dataset, items, nil
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Analysis
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/datasets/{id}/analysis [options]
func OptionsDatasetAnalysis(c *gin.Context) {
	_, err := getDataset(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Analyze dataset
// @Description	Returns summary statistics, department and category breakdowns and concentration metrics for the dataset
// @Tags			Analysis
// @Produce		json
// @Success		200	{object}	AnalysisResponse
// @Failure		400	{object}	AnalysisResponse
// @Failure		404	{object}	AnalysisResponse
// @Failure		500	{object}	AnalysisResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/datasets/{id}/analysis [get]
func GetDatasetAnalysis(c *gin.Context) {
	_, items, err := loadItems(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AnalysisResponse{
			Error: &s,
		})
		return
	}

	departments := analysis.ByDepartment(items)

	topExpenses := make([]LineItem, 0)
	for _, item := range analysis.TopExpenses(items, 5) {
		topExpenses = append(topExpenses, newLineItem(c, item))
	}

	highCostItems := make([]LineItem, 0)
	for _, item := range analysis.HighCostItems(items) {
		highCostItems = append(highCostItems, newLineItem(c, item))
	}

	data := AnalysisReport{
		Summary:       analysis.Summarize(items),
		Departments:   departments,
		Categories:    analysis.ByCategory(items),
		TopExpenses:   topExpenses,
		HighCostItems: highCostItems,
		HHI:           analysis.HHI(departments),
		Gini:          analysis.Gini(departments),
		HealthScore:   analysis.HealthScore(items),
		Insights:      analysis.Insights(items),
	}

	c.JSON(http.StatusOK, AnalysisResponse{Data: &data})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Analysis
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/datasets/{id}/risks [options]
func OptionsDatasetRisks(c *gin.Context) {
	_, err := getDataset(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Assess risks
// @Description	Returns the high cost line items of the dataset together with an overall risk score and level
// @Tags			Analysis
// @Produce		json
// @Success		200	{object}	RiskResponse
// @Failure		400	{object}	RiskResponse
// @Failure		404	{object}	RiskResponse
// @Failure		500	{object}	RiskResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/datasets/{id}/risks [get]
func GetDatasetRisks(c *gin.Context) {
	_, items, err := loadItems(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RiskResponse{
			Error: &s,
		})
		return
	}

	data := analysis.AssessRisks(items)
	c.JSON(http.StatusOK, RiskResponse{Data: &data})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Analysis
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/datasets/{id}/recommendations [options]
func OptionsDatasetRecommendations(c *gin.Context) {
	_, err := getDataset(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Get recommendations
// @Description	Returns prioritized recommendations for the dataset, ordered by priority and impact
// @Tags			Analysis
// @Produce		json
// @Success		200	{object}	RecommendationResponse
// @Failure		400	{object}	RecommendationResponse
// @Failure		404	{object}	RecommendationResponse
// @Failure		500	{object}	RecommendationResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/datasets/{id}/recommendations [get]
func GetDatasetRecommendations(c *gin.Context) {
	_, items, err := loadItems(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecommendationResponse{
			Error: &s,
		})
		return
	}

	data := RecommendationReport{
		HealthScore:     analysis.HealthScore(items),
		Recommendations: analysis.Recommend(items),
	}

	c.JSON(http.StatusOK, RecommendationResponse{Data: &data})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Analysis
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/datasets/{id}/optimizations [options]
func OptionsDatasetOptimizations(c *gin.Context) {
	_, err := getDataset(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Get optimizations
// @Description	Returns cost saving opportunities found in the dataset
// @Tags			Analysis
// @Produce		json
// @Success		200	{object}	OptimizationResponse
// @Failure		400	{object}	OptimizationResponse
// @Failure		404	{object}	OptimizationResponse
// @Failure		500	{object}	OptimizationResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/datasets/{id}/optimizations [get]
func GetDatasetOptimizations(c *gin.Context) {
	_, items, err := loadItems(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), OptimizationResponse{
			Error: &s,
		})
		return
	}

	optimizations := analysis.FindOptimizations(items)

	total := decimal.Zero
	for _, optimization := range optimizations {
		total = total.Add(optimization.PotentialSavings)
	}

	data := OptimizationReport{
		Optimizations:         optimizations,
		TotalPotentialSavings: total,
	}

	c.JSON(http.StatusOK, OptimizationResponse{Data: &data})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Analysis
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/datasets/{id}/chart [options]
func OptionsDatasetChart(c *gin.Context) {
	_, err := getDataset(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Get chart data
// @Description	Returns the department breakdown of the dataset as chart data with labels, series and colors
// @Tags			Analysis
// @Produce		json
// @Success		200	{object}	ChartResponse
// @Failure		400	{object}	ChartResponse
// @Failure		404	{object}	ChartResponse
// @Failure		500	{object}	ChartResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/datasets/{id}/chart [get]
func GetDatasetChart(c *gin.Context) {
	_, items, err := loadItems(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChartResponse{
			Error: &s,
		})
		return
	}

	data := analysis.DepartmentChart(items)
	c.JSON(http.StatusOK, ChartResponse{Data: &data})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Analysis
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/datasets/{id}/compare [options]
func OptionsDatasetCompare(c *gin.Context) {
	_, err := getDataset(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Compare datasets
// @Description	Compares the department totals of the dataset against another dataset
// @Tags			Analysis
// @Produce		json
// @Success		200		{object}	ComparisonResponse
// @Failure		400		{object}	ComparisonResponse
// @Failure		404		{object}	ComparisonResponse
// @Failure		500		{object}	ComparisonResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			other	query		ComparisonQuery	false	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/datasets/{id}/compare [get]
func GetDatasetCompare(c *gin.Context) {
	base, baseItems, err := loadItems(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ComparisonResponse{
			Error: &s,
		})
		return
	}

	var query ComparisonQuery
	if err := c.BindQuery(&query); err != nil || query.Other == br_uuid.Nil {
		s := errOtherParameter.Error()
		c.JSON(http.StatusBadRequest, ComparisonResponse{
			Error: &s,
		})
		return
	}

	var other models.Dataset
	err = models.DB.First(&other, query.Other).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ComparisonResponse{
			Error: &s,
		})
		return
	}

	otherItems, err := models.ItemsFor(models.DB, other.ID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ComparisonResponse{
			Error: &s,
		})
		return
	}

	data := analysis.Compare(base.Name, baseItems, other.Name, otherItems)
	c.JSON(http.StatusOK, ComparisonResponse{Data: &data})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Analysis
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/datasets/{id}/export [options]
func OptionsDatasetExport(c *gin.Context) {
	_, err := getDataset(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Export dataset
// @Description	Exports the dataset and its analysis as an xlsx workbook
// @Tags			Analysis
// @Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success		200
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/datasets/{id}/export [get]
func GetDatasetExport(c *gin.Context) {
	dataset, items, err := loadItems(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	fileName := fmt.Sprintf("budget_analysis_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)

	if err := report.WriteExcel(c.Writer, dataset, items); err != nil {
		c.JSON(http.StatusInternalServerError, httpError{Error: err.Error()})
	}
}
