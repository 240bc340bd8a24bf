package util

import "github.com/gin-gonic/gin"

func ParamsToStruct[T any](c *gin.Context) (T, error) {
	var params T

	if err := c.ShouldBindJSON(&params); err != nil {
		return params, err
	}

	return params, nil
}

func QueryToStruct[T any](c *gin.Context) (T, error) {
	var params T

	if err := c.ShouldBindQuery(&params); err != nil {
		return params, err
	}

	return params, nil
}

func URIToStruct[T any](c *gin.Context) (T, error) {
	var params T

	if err := c.ShouldBindUri(&params); err != nil {
		return params, err
	}

	return params, nil
}
