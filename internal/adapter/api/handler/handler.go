package handler

import (
	"rewear/internal/usecase"
)

var (
	authHandler      *AuthHandler
	userHandler      *UserHandler
	productHandler   *ProductHandler
	swapHandler      *SwapHandler
	assistantHandler *AssistantHandler
	adminHandler     *AdminHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	productUseCase *usecase.ProductUseCase,
	swapUseCase *usecase.SwapUseCase,
	queryUseCase *usecase.QueryUseCase,
	adminUseCase *usecase.AdminUseCase,
) {
	authHandler = NewAuthHandler(authUseCase, userUseCase)
	userHandler = NewUserHandler(userUseCase)
	productHandler = NewProductHandler(productUseCase, queryUseCase)
	swapHandler = NewSwapHandler(swapUseCase)
	assistantHandler = NewAssistantHandler(queryUseCase)
	adminHandler = NewAdminHandler(adminUseCase, userUseCase, productUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetProductHandler() *ProductHandler {
	return productHandler
}

func GetSwapHandler() *SwapHandler {
	return swapHandler
}

func GetAssistantHandler() *AssistantHandler {
	return assistantHandler
}

func GetAdminHandler() *AdminHandler {
	return adminHandler
}
