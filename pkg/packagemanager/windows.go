package packagemanager

import (
	"context"
	"embed"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/gopherclass/go-shellquote"
	"github.com/pkg/errors"
	"github.com/terrariactl/terrariactl/pkg/osinfo"
	"github.com/terrariactl/terrariactl/pkg/utils"
)

//go:embed packages.yaml
var embedFS embed.FS

type repositoryConfig struct {
	Packages []repositoryPackage `yaml:"packages"`
}

type repositoryPackage struct {
	Name            string   `yaml:"name"`
	LookupPaths     []string `yaml:"lookup-paths,omitempty"`
	DownloadURLs    []string `yaml:"download-urls,omitempty"`
	InstallPath     string   `yaml:"install-path,omitempty"`
	InstallCommands []string `yaml:"install-commands,omitempty"`
	PathEnv         []string `yaml:"path-env,omitempty"`
}

// WindowsRepository installs tools from a built-in download repository.
// It covers packages that Chocolatey does not carry and acts as the
// fallback when Chocolatey is unavailable.
type WindowsRepository struct {
	packages map[string]repositoryPackage
}

func NewWindowsRepository(info osinfo.Info) (*WindowsRepository, error) {
	packages, err := loadRepositoryPackages(info)
	if err != nil {
		return nil, err
	}

	return &WindowsRepository{packages: packages}, nil
}

func loadRepositoryPackages(info osinfo.Info) (map[string]repositoryPackage, error) {
	data, err := embedFS.ReadFile("packages.yaml")
	if err != nil {
		return nil, errors.WithMessage(err, "failed to read embedded package repository")
	}

	var cfg repositoryConfig
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to unmarshal package repository")
	}

	packages := make(map[string]repositoryPackage, len(cfg.Packages))
	for _, pkg := range cfg.Packages {
		packages[pkg.Name] = replaceValuesInPackage(pkg, info)
	}

	return packages, nil
}

func replaceValuesInPackage(pkg repositoryPackage, info osinfo.Info) repositoryPackage {
	pkg.LookupPaths = expandEnvSlice(replaceValuesSlice(pkg.LookupPaths, info, pkg))
	pkg.DownloadURLs = replaceValuesSlice(pkg.DownloadURLs, info, pkg)
	pkg.InstallPath = os.ExpandEnv(replaceValues(pkg.InstallPath, info, pkg))
	pkg.InstallCommands = expandEnvSlice(replaceValuesSlice(pkg.InstallCommands, info, pkg))
	pkg.PathEnv = expandEnvSlice(replaceValuesSlice(pkg.PathEnv, info, pkg))

	return pkg
}

func replaceValuesSlice(slice []string, info osinfo.Info, pkg repositoryPackage) []string {
	result := make([]string, 0, len(slice))
	for _, s := range slice {
		result = append(result, replaceValues(s, info, pkg))
	}

	return result
}

func replaceValues(s string, info osinfo.Info, pkg repositoryPackage) string {
	result := strings.ReplaceAll(s, "{{architecture}}", info.Platform)
	result = strings.ReplaceAll(result, "{{package_install_path}}", pkg.InstallPath)

	return result
}

func expandEnvSlice(s []string) []string {
	result := make([]string, 0, len(s))
	for _, item := range s {
		result = append(result, os.ExpandEnv(item))
	}

	return result
}

func (pm *WindowsRepository) Search(_ context.Context, name string) ([]PackageInfo, error) {
	pkg, exists := pm.packages[name]
	if !exists {
		return nil, nil
	}

	return []PackageInfo{{Name: pkg.Name}}, nil
}

func (pm *WindowsRepository) Install(ctx context.Context, packs ...string) error {
	for _, p := range packs {
		pkg, exists := pm.packages[p]
		if !exists {
			return NewErrPackageNotFound(p)
		}

		err := pm.installPackage(ctx, pkg)
		if err != nil {
			return err
		}
	}

	return nil
}

func (pm *WindowsRepository) installPackage(ctx context.Context, pkg repositoryPackage) error {
	log.Println("Installing", pkg.Name, "package")

	for _, lookup := range pkg.LookupPaths {
		path, err := exec.LookPath(lookup)
		if err != nil {
			continue
		}

		log.Printf("Package %s is found in path '%s'\n", pkg.Name, filepath.Dir(path))

		return nil
	}

	dir := pkg.InstallPath
	if dir == "" {
		var err error
		dir, err = os.MkdirTemp("", "install")
		if err != nil {
			return errors.WithMessage(err, "failed to make temp directory")
		}
	}

	downloaded := len(pkg.DownloadURLs) == 0
	for _, url := range pkg.DownloadURLs {
		log.Println("Downloading file from", url, "to", dir)

		err := utils.Download(ctx, url, dir)
		if err != nil {
			log.Println(errors.WithMessage(err, "failed to download file"))

			continue
		}

		downloaded = true

		break
	}
	if !downloaded {
		return errors.Errorf("failed to download package '%s'", pkg.Name)
	}

	for _, command := range pkg.InstallCommands {
		splitted, err := shellquote.Split(command)
		if err != nil {
			return errors.WithMessage(err, "failed to split command")
		}

		//nolint:gosec
		cmd := exec.CommandContext(ctx, splitted[0], splitted[1:]...)
		cmd.Stdout = log.Writer()
		cmd.Stderr = log.Writer()
		cmd.Dir = dir
		log.Println('\n', cmd.String())

		err = cmd.Run()
		if err != nil {
			return errors.WithMessagef(err, "failed to run install command for package '%s'", pkg.Name)
		}
	}

	for _, p := range pkg.PathEnv {
		path, _ := os.LookupEnv("PATH")
		err := os.Setenv("PATH", path+string(os.PathListSeparator)+p)
		if err != nil {
			return errors.WithMessage(err, "failed to extend PATH")
		}
	}

	return nil
}

func (pm *WindowsRepository) CheckForUpdates(_ context.Context) error {
	return nil
}

func (pm *WindowsRepository) Remove(_ context.Context, _ ...string) error {
	return errors.New("removing packages is not supported by the download repository")
}
