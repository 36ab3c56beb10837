package main

//go:generate swag init -g cmd/server/main.go -o docs

// @title           Calldesk API
// @version         0.1.0
// @description     Trading call publishing, subscriber views and performance history.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
