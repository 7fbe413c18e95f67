package main

// General API documentation for swaggo. Run `make swagger-gen` to generate docs.
//
// @title           latentd API
// @version         1.0
// @description     HTTP API for posterior inference over registered probabilistic models.
//
// @contact.name   latentd maintainers
// @contact.url    https://github.com/your-org/latentd
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
