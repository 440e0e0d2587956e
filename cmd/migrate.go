package cmd

import (
	"log"

	"github.com/NathanHymers98/spacebar/config"
	"github.com/NathanHymers98/spacebar/database/dbcore"
	"github.com/spf13/cobra"
)

// migrateCmd 数据库迁移命令
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migration",
	Long:  `Apply the current schema to the configured database without starting the server.`,
	Run: func(cmd *cobra.Command, args []string) {
		config.InitConfig()
		cfg := config.Get()

		db, err := dbcore.Open(cfg)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer func() {
			if err := dbcore.Close(db); err != nil {
				log.Printf("Error closing database: %v", err)
			}
		}()

		if err := dbcore.AutoMigrate(db); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}

		log.Println("Migration completed successfully")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
