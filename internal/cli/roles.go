package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List the role taxonomy",
	Long: `List the role taxonomy available for --role lookups, grouped by
category. The built-in taxonomy can be replaced with a YAML file via
the roles.file config key.`,
	RunE: runRoles,
}

var rolesJSON bool

func init() {
	rolesCmd.Flags().BoolVar(&rolesJSON, "json", false, "Emit the taxonomy as JSON")
}

func runRoles(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}

	store, err := buildRolesStore(cfg)
	if err != nil {
		return err
	}

	if rolesJSON {
		taxonomy := make(map[string][]string)
		for _, category := range store.Categories() {
			names, err := store.Roles(category)
			if err != nil {
				continue
			}
			taxonomy[category] = names
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(taxonomy)
	}

	for _, category := range store.Categories() {
		fmt.Println(category)
		names, err := store.Roles(category)
		if err != nil {
			continue
		}
		for _, name := range names {
			profile, err := store.Get(category, name)
			if err != nil {
				continue
			}
			fmt.Printf("  %s (%s)\n", name, strings.Join(profile.RequiredSkills, ", "))
		}
	}
	return nil
}
