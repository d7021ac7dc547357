package main

import "testing"

func TestMainExecute(t *testing.T) {
	rootCmd.SetArgs([]string{"--help"})
	main()
}
