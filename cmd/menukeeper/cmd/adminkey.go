package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/solatis/menukeeper/internal/core/auth"
	"github.com/solatis/menukeeper/internal/core/config"
	"github.com/solatis/menukeeper/internal/core/db"
	"github.com/solatis/menukeeper/internal/types"
)

var adminKeyCmd = &cobra.Command{
	Use:   "admin-key",
	Short: "Manage admin keys",
}

var adminKeyCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new admin key",
	Long:  `Creates an admin key under the newest configured HMAC secret. The key is printed once and only its HMAC is stored.`,
	RunE:  runAdminKeyCreate,
}

var adminKeyRevokeCmd = &cobra.Command{
	Use:   "revoke",
	Short: "Revoke an admin key",
	RunE:  runAdminKeyRevoke,
}

var adminKeySecretIDCmd = &cobra.Command{
	Use:   "secret-id",
	Short: "Generate an HMAC secret identifier",
	Long:  `Generates a fresh secret identifier for rotating in a new HMAC secret (MK_HMAC_SECRET_N). Identifiers are time-ordered, so admin-key create signs with the newest configured secret.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(types.NewSecretID())
	},
}

func init() {
	rootCmd.AddCommand(adminKeyCmd)
	adminKeyCmd.AddCommand(adminKeyCreateCmd)
	adminKeyCmd.AddCommand(adminKeyRevokeCmd)
	adminKeyCmd.AddCommand(adminKeySecretIDCmd)
	adminKeyCreateCmd.Flags().String("label", "", "human-readable key label (required)")
	adminKeyCreateCmd.MarkFlagRequired("label")
	adminKeyRevokeCmd.Flags().String("id", "", "admin key ID to revoke (required)")
	adminKeyRevokeCmd.MarkFlagRequired("id")
}

func runAdminKeyCreate(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	label, _ := cmd.Flags().GetString("label")

	secrets, err := config.HMACSecrets()
	if err != nil {
		return fmt.Errorf("failed to load HMAC secrets: %w", err)
	}
	if len(secrets) == 0 {
		return fmt.Errorf("no HMAC secrets configured (set MK_HMAC_SECRET environment variable)")
	}

	// UUIDv7 secret IDs are time-ordered; the lexicographically last one
	// is the newest and should sign fresh keys during rotation.
	secretIDs := make([]string, 0, len(secrets))
	for id := range secrets {
		secretIDs = append(secretIDs, id)
	}
	sort.Strings(secretIDs)
	secretID := secretIDs[len(secretIDs)-1]

	adminKey, err := auth.GenerateAdminKey(secretID)
	if err != nil {
		return err
	}

	if dbURL == "" {
		return fmt.Errorf("--db-url required")
	}
	database, err := db.Open(dbURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	queries, err := db.LoadQueries(database)
	if err != nil {
		return fmt.Errorf("failed to load queries: %w", err)
	}

	keyID := types.NewRequestID()
	keyHash := auth.ComputeHMAC(secrets[secretID], adminKey)
	if _, err := queries.Exec("insert-admin-key", keyID, label, keyHash, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to store admin key: %w", err)
	}

	fmt.Printf("admin key id: %s\n", keyID)
	fmt.Printf("admin key:    %s\n", adminKey)
	fmt.Println("store the key now; it cannot be recovered")
	return nil
}

func runAdminKeyRevoke(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	rawID, _ := cmd.Flags().GetString("id")
	keyID, err := types.ParseRequestID(rawID)
	if err != nil {
		return fmt.Errorf("invalid admin key id %q: %w", rawID, err)
	}

	if dbURL == "" {
		return fmt.Errorf("--db-url required")
	}
	database, err := db.Open(dbURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	queries, err := db.LoadQueries(database)
	if err != nil {
		return fmt.Errorf("failed to load queries: %w", err)
	}

	result, err := queries.Exec("revoke-admin-key", time.Now().UTC(), keyID)
	if err != nil {
		return fmt.Errorf("failed to revoke admin key: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("admin key %s not found or already revoked", keyID)
	}

	fmt.Printf("admin key %s revoked\n", keyID)
	return nil
}
