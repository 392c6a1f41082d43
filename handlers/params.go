package handlers

import (
	"safarexpress/utils"

	"github.com/gin-gonic/gin"
)

const minIDLength = 12

// bookingID reads and checks the :id path parameter.
func bookingID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if len(id) < minIDLength {
		utils.RespondError(c, utils.ValidationError([]utils.FieldError{
			{Path: "id", Message: "must be at least 12 characters"},
		}))
		return "", false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.RespondError(c, utils.BindingError(err))
		return false
	}
	return true
}
