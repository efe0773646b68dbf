// Package main provides the gnoccur CLI application.
// gnoccur scores species occurrence proximity to an area of interest
// using GBIF data.
package main

import "github.com/gnames/gnoccur/cmd"

func main() {
	cmd.Execute()
}
