package main

import (
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// settings are read from flags, NEZOBA_* environment variables and an
// optional config file, in that order of precedence.
type settings struct {
	Bits  string        // switch positions, read from stdin when empty
	Hold  int           // control loop cycles per input line
	Cycle time.Duration // simulated time per cycle
	HID   bool          // print raw HID reports
}

func loadSettings(args []string) (settings, error) {
	flags := pflag.NewFlagSet("nezoba-sim", pflag.ContinueOnError)
	flags.String("config", "", "config file (yaml, toml or json)")
	flags.String("bits", "", `configuration switch bits, e.g. "0 0 1 0" (read from stdin when empty)`)
	flags.Int("hold", 7, "control loop cycles per input line")
	flags.Duration("cycle", time.Millisecond, "simulated time per cycle")
	flags.Bool("hid", false, "print raw HID reports")
	if err := flags.Parse(args); err != nil {
		return settings{}, err
	}

	v := viper.New()
	v.SetEnvPrefix("NEZOBA")
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return settings{}, err
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return settings{}, err
		}
	}

	s := settings{
		Bits:  v.GetString("bits"),
		Hold:  v.GetInt("hold"),
		Cycle: v.GetDuration("cycle"),
		HID:   v.GetBool("hid"),
	}
	if s.Hold < 1 {
		s.Hold = 1
	}
	return s, nil
}
