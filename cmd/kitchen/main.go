package main

import (
	"fmt"
	"os"

	"kind-kitchen/internal/cli"
	"kind-kitchen/internal/pkg/common"

	"github.com/joho/godotenv"
)

func main() {
	// 載入 .env（不存在時忽略）
	_ = godotenv.Load()

	defer common.Sync()

	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
