package main

//go:generate swag init -g main.go --parseInternal --outputTypes go -o internal/pkg/apidoc/docs --instanceName jwtlisting

import (
	"context"
	"time"

	"github.com/MichValwin/JWT-listing/internal/app"
)

// @title           JWTListingExample
// @version         1.0
// @description     Hello world behind a bearer token, with a list of pre-signed demo tokens to try it with.
// @license.name    MIT
// @license.url     https://mit-license.org/
// @securityDefinitions.apikey  BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT.
func main() {
	application := app.New()    // Initialize the application
	wait := application.Start() // Start the application and wait for the termination signal
	<-wait                      // Wait for the application to receive a termination signal
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	application.Stop(ctx) // Stop the application gracefully
}
