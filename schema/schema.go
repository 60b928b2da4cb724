// Package schema has configs, models and taxonomies for all parts of dealsense.
package schema
