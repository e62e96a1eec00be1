package main

import "saju-api/internal/cli"

func main() {
	cli.Execute()
}
