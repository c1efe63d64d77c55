package servers

//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen -generate types,server -package servers -o servers.gen.go ../../../api/openapi.yml
