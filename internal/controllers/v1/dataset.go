package v1

import (
	"net/http"

	"github.com/budgetradar/backend/internal/httputil"
	"github.com/budgetradar/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterDatasetRoutes registers the routes for datasets with
// the RouterGroup that is passed.
func RegisterDatasetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsDatasetList)
		r.GET("", GetDatasets)
		r.POST("", CreateDatasets)
	}

	// Dataset with ID
	{
		r.OPTIONS("/:id", OptionsDatasetDetail)
		r.GET("/:id", GetDataset)
		r.PATCH("/:id", UpdateDataset)
		r.DELETE("/:id", DeleteDataset)
	}

	// Line items of a dataset
	{
		r.OPTIONS("/:id/items", OptionsDatasetItems)
		r.GET("/:id/items", GetDatasetItems)
		r.POST("/:id/items", CreateDatasetItems)
	}

	// Analysis endpoints, all read only
	{
		r.OPTIONS("/:id/analysis", OptionsDatasetAnalysis)
		r.GET("/:id/analysis", GetDatasetAnalysis)

		r.OPTIONS("/:id/risks", OptionsDatasetRisks)
		r.GET("/:id/risks", GetDatasetRisks)

		r.OPTIONS("/:id/recommendations", OptionsDatasetRecommendations)
		r.GET("/:id/recommendations", GetDatasetRecommendations)

		r.OPTIONS("/:id/optimizations", OptionsDatasetOptimizations)
		r.GET("/:id/optimizations", GetDatasetOptimizations)

		r.OPTIONS("/:id/chart", OptionsDatasetChart)
		r.GET("/:id/chart", GetDatasetChart)

		r.OPTIONS("/:id/compare", OptionsDatasetCompare)
		r.GET("/:id/compare", GetDatasetCompare)

		r.OPTIONS("/:id/export", OptionsDatasetExport)
		r.GET("/:id/export", GetDatasetExport)
	}
}

// getDataset binds the URI ID and loads the dataset from the database.
func getDataset(c *gin.Context) (models.Dataset, error) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		return models.Dataset{}, err
	}

	var dataset models.Dataset
	if err := models.DB.First(&dataset, uri.ID).Error; err != nil {
		return models.Dataset{}, err
	}

	return dataset, nil
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Datasets
// @Success		204
// @Router			/v1/datasets [options]
func OptionsDatasetList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Datasets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/datasets/{id} [options]
func OptionsDatasetDetail(c *gin.Context) {
	_, err := getDataset(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create datasets
// @Description	Creates new datasets
// @Tags			Datasets
// @Produce		json
// @Success		201			{object}	DatasetCreateResponse
// @Failure		400			{object}	DatasetCreateResponse
// @Failure		500			{object}	DatasetCreateResponse
// @Param			datasets	body		[]DatasetEditable	true	"Datasets"
// @Router			/v1/datasets [post]
func CreateDatasets(c *gin.Context) {
	var editables []DatasetEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DatasetCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := DatasetCreateResponse{}

	for _, editable := range editables {
		dataset := editable.model()

		err = models.DB.Create(&dataset).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data, err := newDataset(c, models.DB, dataset)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}
		r.Data = append(r.Data, DatasetResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get datasets
// @Description	Returns a list of datasets
// @Tags			Datasets
// @Produce		json
// @Success		200	{object}	DatasetListResponse
// @Failure		400	{object}	DatasetListResponse
// @Failure		500	{object}	DatasetListResponse
// @Router			/v1/datasets [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			note		query	string	false	"Filter by note"
// @Param			template	query	string	false	"Filter by the built-in template the dataset was created from"
// @Param			search		query	string	false	"Search for this text in name and note"
// @Param			offset		query	uint	false	"The offset of the first dataset returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of datasets to return. Defaults to 50."
func GetDatasets(c *gin.Context) {
	var filter DatasetQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("name ASC").
		Where(filter.model(), queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 datasets and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var datasets []models.Dataset
	err := q.Find(&datasets).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DatasetListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DatasetListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Dataset, 0)
	for _, dataset := range datasets {
		apiResource, err := newDataset(c, models.DB, dataset)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), DatasetListResponse{
				Error: &s,
			})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, DatasetListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get dataset
// @Description	Returns a specific dataset
// @Tags			Datasets
// @Produce		json
// @Success		200	{object}	DatasetResponse
// @Failure		400	{object}	DatasetResponse
// @Failure		404	{object}	DatasetResponse
// @Failure		500	{object}	DatasetResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/datasets/{id} [get]
func GetDataset(c *gin.Context) {
	dataset, err := getDataset(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DatasetResponse{
			Error: &s,
		})
		return
	}

	data, err := newDataset(c, models.DB, dataset)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DatasetResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, DatasetResponse{Data: &data})
}

// @Summary		Update dataset
// @Description	Update an existing dataset. Only values to be updated need to be specified.
// @Tags			Datasets
// @Accept			json
// @Produce		json
// @Success		200		{object}	DatasetResponse
// @Failure		400		{object}	DatasetResponse
// @Failure		404		{object}	DatasetResponse
// @Failure		500		{object}	DatasetResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			dataset	body		DatasetEditable	true	"Dataset"
// @Router			/v1/datasets/{id} [patch]
func UpdateDataset(c *gin.Context) {
	dataset, err := getDataset(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DatasetResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, DatasetEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DatasetResponse{
			Error: &s,
		})
		return
	}

	var data DatasetEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DatasetResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&dataset).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DatasetResponse{
			Error: &s,
		})
		return
	}

	r, err := newDataset(c, models.DB, dataset)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DatasetResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, DatasetResponse{Data: &r})
}

// @Summary		Delete dataset
// @Description	Deletes a dataset and all its line items
// @Tags			Datasets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/datasets/{id} [delete]
func DeleteDataset(c *gin.Context) {
	dataset, err := getDataset(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&dataset).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
