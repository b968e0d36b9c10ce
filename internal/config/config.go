package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "skirmish.cfg.json"

// Tuning holds the simulation constants. Times are simulation seconds, distances world units.
type Tuning struct {
	PlayerMaxHealth    int     `json:"playerMaxHealth" mapstructure:"playerMaxHealth"`
	PlayerSpeed        float64 `json:"playerSpeed" mapstructure:"playerSpeed"`
	SprintSpeed        float64 `json:"sprintSpeed" mapstructure:"sprintSpeed"`
	PlayerStartX       float64 `json:"playerStartX" mapstructure:"playerStartX"`
	PlayerStartY       float64 `json:"playerStartY" mapstructure:"playerStartY"`
	PlayerStartZ       float64 `json:"playerStartZ" mapstructure:"playerStartZ"`
	EyeHeight          float64 `json:"eyeHeight" mapstructure:"eyeHeight"`
	MuzzleOffset       float64 `json:"muzzleOffset" mapstructure:"muzzleOffset"`
	WeaponName         string  `json:"weaponName" mapstructure:"weaponName"`
	MagazineCapacity   int     `json:"magazineCapacity" mapstructure:"magazineCapacity"`
	ShootCooldown      float64 `json:"shootCooldown" mapstructure:"shootCooldown"`
	ReloadDuration     float64 `json:"reloadDuration" mapstructure:"reloadDuration"`
	GracePeriod        float64 `json:"gracePeriod" mapstructure:"gracePeriod"`
	ProjectileSpeed    float64 `json:"projectileSpeed" mapstructure:"projectileSpeed"`
	ProjectileLifetime float64 `json:"projectileLifetime" mapstructure:"projectileLifetime"`
	ProjectileDamage   int     `json:"projectileDamage" mapstructure:"projectileDamage"`
	HitRadius          float64 `json:"hitRadius" mapstructure:"hitRadius"`
	BodyHeight         float64 `json:"bodyHeight" mapstructure:"bodyHeight"`
	MinDistance        float64 `json:"minDistance" mapstructure:"minDistance"`
	MinEnemyDistance   float64 `json:"minEnemyDistance" mapstructure:"minEnemyDistance"`
	TurnRate           float64 `json:"turnRate" mapstructure:"turnRate"`
	MaxDeltaTime       float64 `json:"maxDeltaTime" mapstructure:"maxDeltaTime"`
}

// DefaultTuning returns the stock game balance.
func DefaultTuning() Tuning {
	return Tuning{
		PlayerMaxHealth:    100,
		PlayerSpeed:        5,
		SprintSpeed:        10,
		PlayerStartX:       0,
		PlayerStartY:       2,
		PlayerStartZ:       0,
		EyeHeight:          0,
		MuzzleOffset:       1,
		WeaponName:         "MP5K",
		MagazineCapacity:   60,
		ShootCooldown:      0.1,
		ReloadDuration:     2.5,
		GracePeriod:        1,
		ProjectileSpeed:    200,
		ProjectileLifetime: 3,
		ProjectileDamage:   7,
		HitRadius:          1,
		BodyHeight:         1.5,
		MinDistance:        2,
		MinEnemyDistance:   2.5,
		TurnRate:           2,
		MaxDeltaTime:       0.1,
	}
}

// SaveConfig selects the slot and encoding for save files.
type SaveConfig struct {
	Slot     string `json:"slot" mapstructure:"slot"`
	Compress bool   `json:"compress" mapstructure:"compress"`
}

// FileConfig holds settings for the file storage backend.
type FileConfig struct {
	Dir       string `json:"dir" mapstructure:"dir"`
	Extension string `json:"extension" mapstructure:"extension"`
}

// SQLiteConfig holds settings for the SQLite storage backend.
type SQLiteConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// BadgerConfig holds settings for the Badger storage backend.
type BadgerConfig struct {
	Dir string `json:"dir" mapstructure:"dir"`
}

// StorageConfig selects and configures the save slot backend.
type StorageConfig struct {
	Type   string       `json:"type" mapstructure:"type"`
	File   FileConfig   `json:"file" mapstructure:"file"`
	SQLite SQLiteConfig `json:"sqlite" mapstructure:"sqlite"`
	Badger BadgerConfig `json:"badger" mapstructure:"badger"`
}

// RecorderConfig holds combat log settings.
type RecorderConfig struct {
	Enabled       bool          `json:"enabled" mapstructure:"enabled"`
	Driver        string        `json:"driver" mapstructure:"driver"`
	SQLitePath    string        `json:"sqlitePath" mapstructure:"sqlitePath"`
	FlushInterval time.Duration `json:"flushInterval" mapstructure:"flushInterval"`
	BufferSize    int           `json:"bufferSize" mapstructure:"bufferSize"`
}

// OTelConfig holds OpenTelemetry settings.
type OTelConfig struct {
	Enabled      bool          `json:"enabled" mapstructure:"enabled"`
	ServiceName  string        `json:"serviceName" mapstructure:"serviceName"`
	BatchTimeout time.Duration `json:"batchTimeout" mapstructure:"batchTimeout"`
	Endpoint     string        `json:"endpoint" mapstructure:"endpoint"`
	Insecure     bool          `json:"insecure" mapstructure:"insecure"`
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./skirmishlogs")
	viper.SetDefault("seed", 0)
	viper.SetDefault("tickRate", 60)

	viper.SetDefault("levels.file", "")
	viper.SetDefault("level.autoStartDelay", "0s")

	t := DefaultTuning()
	viper.SetDefault("tuning.playerMaxHealth", t.PlayerMaxHealth)
	viper.SetDefault("tuning.playerSpeed", t.PlayerSpeed)
	viper.SetDefault("tuning.sprintSpeed", t.SprintSpeed)
	viper.SetDefault("tuning.playerStartX", t.PlayerStartX)
	viper.SetDefault("tuning.playerStartY", t.PlayerStartY)
	viper.SetDefault("tuning.playerStartZ", t.PlayerStartZ)
	viper.SetDefault("tuning.eyeHeight", t.EyeHeight)
	viper.SetDefault("tuning.muzzleOffset", t.MuzzleOffset)
	viper.SetDefault("tuning.weaponName", t.WeaponName)
	viper.SetDefault("tuning.magazineCapacity", t.MagazineCapacity)
	viper.SetDefault("tuning.shootCooldown", t.ShootCooldown)
	viper.SetDefault("tuning.reloadDuration", t.ReloadDuration)
	viper.SetDefault("tuning.gracePeriod", t.GracePeriod)
	viper.SetDefault("tuning.projectileSpeed", t.ProjectileSpeed)
	viper.SetDefault("tuning.projectileLifetime", t.ProjectileLifetime)
	viper.SetDefault("tuning.projectileDamage", t.ProjectileDamage)
	viper.SetDefault("tuning.hitRadius", t.HitRadius)
	viper.SetDefault("tuning.bodyHeight", t.BodyHeight)
	viper.SetDefault("tuning.minDistance", t.MinDistance)
	viper.SetDefault("tuning.minEnemyDistance", t.MinEnemyDistance)
	viper.SetDefault("tuning.turnRate", t.TurnRate)
	viper.SetDefault("tuning.maxDeltaTime", t.MaxDeltaTime)

	viper.SetDefault("save.slot", "savefile")
	viper.SetDefault("save.compress", false)

	viper.SetDefault("storage.type", "file")
	viper.SetDefault("storage.file.dir", "pickle_data")
	viper.SetDefault("storage.file.extension", ".pkl")
	viper.SetDefault("storage.sqlite.path", "pickle_data/saves.db")
	viper.SetDefault("storage.badger.dir", "pickle_data/badger")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "skirmish")

	viper.SetDefault("recorder.enabled", false)
	viper.SetDefault("recorder.driver", "sqlite")
	viper.SetDefault("recorder.sqlitePath", "./recordings/combat.db")
	viper.SetDefault("recorder.flushInterval", "5s")
	viper.SetDefault("recorder.bufferSize", 1000)

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "supersecrettoken")
	viper.SetDefault("influx.org", "skirmish")
	viper.SetDefault("influx.bucket", "skirmish_waves")
	viper.SetDefault("influx.backupPath", "./skirmishlogs/influx_backup.lp.gz")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "skirmish")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)

	viper.SetDefault("audio.enabled", true)
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file. Defaults stay in
// effect when the file cannot be read.
func Load(configDir string) error {
	setDefaults()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// GetTuning returns the simulation constants.
func GetTuning() Tuning {
	return Tuning{
		PlayerMaxHealth:    viper.GetInt("tuning.playerMaxHealth"),
		PlayerSpeed:        viper.GetFloat64("tuning.playerSpeed"),
		SprintSpeed:        viper.GetFloat64("tuning.sprintSpeed"),
		PlayerStartX:       viper.GetFloat64("tuning.playerStartX"),
		PlayerStartY:       viper.GetFloat64("tuning.playerStartY"),
		PlayerStartZ:       viper.GetFloat64("tuning.playerStartZ"),
		EyeHeight:          viper.GetFloat64("tuning.eyeHeight"),
		MuzzleOffset:       viper.GetFloat64("tuning.muzzleOffset"),
		WeaponName:         viper.GetString("tuning.weaponName"),
		MagazineCapacity:   viper.GetInt("tuning.magazineCapacity"),
		ShootCooldown:      viper.GetFloat64("tuning.shootCooldown"),
		ReloadDuration:     viper.GetFloat64("tuning.reloadDuration"),
		GracePeriod:        viper.GetFloat64("tuning.gracePeriod"),
		ProjectileSpeed:    viper.GetFloat64("tuning.projectileSpeed"),
		ProjectileLifetime: viper.GetFloat64("tuning.projectileLifetime"),
		ProjectileDamage:   viper.GetInt("tuning.projectileDamage"),
		HitRadius:          viper.GetFloat64("tuning.hitRadius"),
		BodyHeight:         viper.GetFloat64("tuning.bodyHeight"),
		MinDistance:        viper.GetFloat64("tuning.minDistance"),
		MinEnemyDistance:   viper.GetFloat64("tuning.minEnemyDistance"),
		TurnRate:           viper.GetFloat64("tuning.turnRate"),
		MaxDeltaTime:       viper.GetFloat64("tuning.maxDeltaTime"),
	}
}

// GetSaveConfig returns the save slot configuration.
func GetSaveConfig() SaveConfig {
	return SaveConfig{
		Slot:     viper.GetString("save.slot"),
		Compress: viper.GetBool("save.compress"),
	}
}

// GetStorageConfig returns the storage backend configuration.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		File: FileConfig{
			Dir:       viper.GetString("storage.file.dir"),
			Extension: viper.GetString("storage.file.extension"),
		},
		SQLite: SQLiteConfig{
			Path: viper.GetString("storage.sqlite.path"),
		},
		Badger: BadgerConfig{
			Dir: viper.GetString("storage.badger.dir"),
		},
	}
}

// GetRecorderConfig returns the combat log configuration.
func GetRecorderConfig() RecorderConfig {
	return RecorderConfig{
		Enabled:       viper.GetBool("recorder.enabled"),
		Driver:        viper.GetString("recorder.driver"),
		SQLitePath:    viper.GetString("recorder.sqlitePath"),
		FlushInterval: viper.GetDuration("recorder.flushInterval"),
		BufferSize:    viper.GetInt("recorder.bufferSize"),
	}
}

// GetOTelConfig returns the OpenTelemetry configuration.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  viper.GetString("otel.serviceName"),
		BatchTimeout: viper.GetDuration("otel.batchTimeout"),
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
	}
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetInt64 returns an int64 config value.
func GetInt64(key string) int64 {
	return viper.GetInt64(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetFloat returns a float64 config value.
func GetFloat(key string) float64 {
	return viper.GetFloat64(key)
}

// GetDuration returns a duration config value.
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}
