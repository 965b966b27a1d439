// Package config loads kbcsite configuration.
//
// Settings come from kbc.json in the working directory (or the file named by
// --config), then KBC_ environment variables, which win. Nested keys join
// with underscores: KBC_SERVER_PORT overrides server.port.
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "host": "",
//	    "port": 8080,
//	    "shutdown_timeout": "15s",
//	    "allowed_origins": ["https://kbcconstruction.com"],
//	    "dev_mode": false
//	  },
//	  "live": {
//	    "frame_interval": "16ms",
//	    "carousel_interval": "5s",
//	    "max_sessions": 1000
//	  },
//	  "content": { "path": "" },
//	  "public_dir": "public",
//	  "logging": { "level": "INFO", "format": "text", "file": "" },
//	  "telemetry": { "metrics": true, "tracing": false },
//	  "publish": {
//	    "bucket": "kbc-site",
//	    "region": "us-east-1",
//	    "prefix": "",
//	    "endpoint": "",
//	    "path_style": false
//	  }
//	}
//
// Durations use Go duration strings.
package config
