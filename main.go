package main

import "github.com/quizhost/buzzkit/cmd"

func main() {
	cmd.Execute()
}
