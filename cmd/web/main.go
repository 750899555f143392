// @title           Restaurant API
// @version         1.0
// @description     Restaurant discovery, table reservations, posts and reviews.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization

package main

import "restaurant_backend/internal/app"

func main() {
	app.Run()
}
