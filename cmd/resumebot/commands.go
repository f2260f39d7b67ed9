package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saur-bh/resumebot/internal/composer"
	"github.com/saur-bh/resumebot/internal/config"
)

// --- ask ---

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the chatbot a question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.Join(args, " ")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/api/chat/message", map[string]string{
			"message": question,
		})
		if err != nil {
			return err
		}

		var reply composer.Response
		if err := decodeJSON(resp, &reply); err != nil {
			return err
		}

		fmt.Println(reply.Text)

		if reply.Attachments != nil {
			for _, v := range reply.Attachments.Videos {
				fmt.Printf("  %s %s\n", colorize(colorCyan, v.Title), v.URL)
			}
			for _, a := range reply.Attachments.Articles {
				fmt.Printf("  %s %s\n", colorize(colorCyan, a.Title), a.URL)
			}
			for _, c := range reply.Attachments.Certifications {
				fmt.Printf("  %s (%s, %d) %s\n", colorize(colorCyan, c.Title), c.Issuer, c.Year, c.URL)
			}
			if w := reply.Attachments.Website; w != nil {
				fmt.Printf("  %s %s\n", colorize(colorCyan, w.Title), w.URL)
			}
		}

		if len(reply.Suggestions) > 0 {
			fmt.Println()
			fmt.Println(colorize(colorBold, "You could also ask:"))
			for _, s := range reply.Suggestions {
				fmt.Printf("  - %s\n", s)
			}
		}
		return nil
	},
}

// --- profile ---

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the chatbot profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current profile as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/api/profile")
		if err != nil {
			return err
		}

		var p any
		if err := decodeJSON(resp, &p); err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	},
}

var profileImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the profile with a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}

		var p map[string]any
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("invalid JSON: %w", err)
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.put(cmd.Context(), "/api/profile", p)
		if err != nil {
			return err
		}

		var result map[string]string
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printSuccess("Profile imported from %s", args[0])
		return nil
	},
}

func init() {
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileImportCmd)
}

// --- data ---

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Manage the AI data sources",
}

var dataUploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a document for text extraction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.upload(cmd.Context(), "/api/data/upload", args[0])
		if err != nil {
			return err
		}

		var result map[string]string
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printSuccess("Queued upload %s (%s)", result["id"], result["url"])
		return nil
	},
}

var dataSetCmd = &cobra.Command{
	Use:   "set <section> <content>",
	Short: "Append text to a data section (resume, social_media, additional_info)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		section, content := args[0], args[1]
		replace, _ := cmd.Flags().GetBool("replace")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/api/data/personal-info", map[string]any{
			"section": section,
			"content": content,
			"replace": replace,
		})
		if err != nil {
			return err
		}

		var result map[string]string
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printSuccess("Updated section %s", result["section"])
		return nil
	},
}

var dataInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show data sections and uploads",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/api/data/info")
		if err != nil {
			return err
		}

		var info struct {
			Sections map[string]int `json:"sections"`
			Uploads  []struct {
				ID        string `json:"ID"`
				FileName  string `json:"FileName"`
				URL       string `json:"URL"`
				Extracted bool   `json:"Extracted"`
			} `json:"uploads"`
		}
		if err := decodeJSON(resp, &info); err != nil {
			return err
		}

		for section, size := range info.Sections {
			printStatus(section, "%d bytes", size)
		}
		for _, up := range info.Uploads {
			state := "pending"
			if up.Extracted {
				state = "extracted"
			}
			fmt.Printf("%s  %s  %s  %s\n",
				colorize(colorCyan, shortID(up.ID)), up.FileName, up.URL, state)
		}
		return nil
	},
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	dataSetCmd.Flags().Bool("replace", false, "replace the section instead of appending")
	dataCmd.AddCommand(dataUploadCmd)
	dataCmd.AddCommand(dataSetCmd)
	dataCmd.AddCommand(dataInfoCmd)
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		keys := config.ShowAll(cfg)
		for _, k := range keys {
			fmt.Printf("  %s = %s\n", colorize(colorBold, k.Key), k.Value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return err
		}

		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
