package commands

import (
	"github.com/spf13/cobra"

	"github.com/badhouseplants/shoebill/cmd/shoebill/handlers"
	"github.com/badhouseplants/shoebill/internal/config"
)

// Manifests returns the command that prints the installation manifests.
//
// Optional flags:
//
//	--namespace, -n: Namespace of the controller ServiceAccount and Deployment (default: default)
//	--image, -i: Controller image repository (default: shoebill)
//	--tag, -t: Controller image tag (default: latest)
func Manifests() *cobra.Command {
	cfg := config.DefaultManifests()

	cmd := &cobra.Command{
		Use:   "manifests",
		Short: "Print the manifests needed to install the controller",
		Long: `Print the ConfigSet CRD, RBAC and controller Deployment as YAML.

Examples:
  # Install into the default namespace
  shoebill manifests | kubectl apply -f -

  # Install a pinned image into its own namespace
  shoebill manifests -n shoebill-system -t v0.1.0`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Manifests(cmd.OutOrStdout(), cfg)
		},
	}

	cmd.Flags().StringVarP(&cfg.Namespace, "namespace", "n", cfg.Namespace, "Namespace to install the controller into")
	cmd.Flags().StringVarP(&cfg.Image, "image", "i", cfg.Image, "Controller image repository")
	cmd.Flags().StringVarP(&cfg.Tag, "tag", "t", cfg.Tag, "Controller image tag")

	return cmd
}
