package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "llmrelay",
	Short: "Vendor-neutral LLM request relay",
	Long:  "llmrelay sends a conversation to the Anthropic, Google, or OpenAI text generation APIs and prints the normalized result.",
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("vendor", "anthropic", "Vendor to use: anthropic, google, or openai")
	rootCmd.PersistentFlags().StringP("model", "m", "claude-sonnet-4-5", "Model identifier")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	_ = viper.BindPFlag("vendor", rootCmd.PersistentFlags().Lookup("vendor"))
	_ = viper.BindPFlag("model", rootCmd.PersistentFlags().Lookup("model"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	viper.SetEnvPrefix("LLMRELAY")
	viper.AutomaticEnv()
}
