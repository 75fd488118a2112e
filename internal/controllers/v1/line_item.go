package v1

import (
	"net/http"

	"github.com/budgetradar/backend/internal/httputil"
	"github.com/budgetradar/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Datasets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/datasets/{id}/items [options]
func OptionsDatasetItems(c *gin.Context) {
	_, err := getDataset(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPost(c)
}

// @Summary		Get line items
// @Description	Returns the line items of the dataset, ordered by amount descending
// @Tags			Datasets
// @Produce		json
// @Success		200	{object}	LineItemListResponse
// @Failure		400	{object}	LineItemListResponse
// @Failure		404	{object}	LineItemListResponse
// @Failure		500	{object}	LineItemListResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/datasets/{id}/items [get]
func GetDatasetItems(c *gin.Context) {
	dataset, err := getDataset(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LineItemListResponse{
			Error: &s,
		})
		return
	}

	items, err := models.ItemsFor(models.DB, dataset.ID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LineItemListResponse{
			Error: &s,
		})
		return
	}

	data := make([]LineItem, 0, len(items))
	for _, item := range items {
		data = append(data, newLineItem(c, item))
	}

	c.JSON(http.StatusOK, LineItemListResponse{Data: data})
}

// @Summary		Create line items
// @Description	Creates line items in the dataset. The response code is the highest response code number that a single line item creation would have caused. If it is not equal to 201, at least one line item has an error.
// @Tags			Datasets
// @Produce		json
// @Success		201		{object}	LineItemCreateResponse
// @Failure		400		{object}	LineItemCreateResponse
// @Failure		404		{object}	LineItemCreateResponse
// @Failure		500		{object}	LineItemCreateResponse
// @Param			id		path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			items	body		[]LineItemEditable	true	"Line items"
// @Router			/v1/datasets/{id}/items [post]
func CreateDatasetItems(c *gin.Context) {
	dataset, err := getDataset(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LineItemCreateResponse{
			Error: &s,
		})
		return
	}

	var editables []LineItemEditable
	err = httputil.BindData(c, &editables)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LineItemCreateResponse{
			Error: &s,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := LineItemCreateResponse{}

	for _, editable := range editables {
		item := editable.model(dataset.ID)

		err = models.DB.Create(&item).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newLineItem(c, item)
		r.Data = append(r.Data, LineItemResponse{Data: &data})
	}

	c.JSON(status, r)
}
